// Package main provides the areamap binary that lays out area XML files on a
// grid and writes one layout document per area.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mudmap/internal/config"
	"github.com/cory-johannsen/mudmap/internal/hint"
	"github.com/cory-johannsen/mudmap/internal/importer"
	"github.com/cory-johannsen/mudmap/internal/importer/romxml"
	"github.com/cory-johannsen/mudmap/internal/importer/zoneyaml"
	"github.com/cory-johannsen/mudmap/internal/observability"
	"github.com/cory-johannsen/mudmap/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and MUDMAP_ environment")
	hintsPath := flag.String("hints", "", "hint file (.yaml, .yml or .lua); overrides hints.file")
	sourcePath := flag.String("source", "", "area file or directory")
	sourceFormat := flag.String("source-format", "", "source format: xml or zone; overrides source.format")
	outputDir := flag.String("output", "", "output directory; overrides output.dir")
	format := flag.String("format", "", "output format: yaml, json or text; overrides output.format")
	flag.Parse()

	if *sourcePath == "" {
		fmt.Fprintln(os.Stderr, "usage: areamap -source <file|dir> [-source-format xml|zone] [-config <file>] [-hints <file>] [-output <dir>] [-format yaml|json|text]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *hintsPath != "" {
		cfg.Hints.File = *hintsPath
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *sourceFormat != "" {
		cfg.Source.Format = *sourceFormat
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validating config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	outFormat, err := importer.ParseFormat(cfg.Output.Format)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	evaluator := scripting.NewEvaluator(cfg.Hints.InstructionLimit, logger.Named("hints"))
	hints, err := hint.LoadFile(cfg.Hints.File, evaluator)
	if err != nil {
		logger.Fatal("loading hints", zap.String("file", cfg.Hints.File), zap.Error(err))
	}
	logger.Info("hints loaded",
		zap.String("file", cfg.Hints.File),
		zap.Int("areas", len(hints)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var src importer.Source
	switch cfg.Source.Format {
	case "zone":
		src = zoneyaml.NewSource()
	default:
		src = romxml.NewSource()
	}

	imp := importer.New(src, hints, cfg.Layout.Options(), outFormat, logger)
	written, err := imp.Run(ctx, *sourcePath, cfg.Output.Dir)
	if err != nil {
		logger.Error("import failed", zap.Error(err), zap.Int("written", len(written)))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("areamap complete",
		zap.Int("files", len(written)),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
}
