package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mudmap/internal/hint"
	"github.com/cory-johannsen/mudmap/internal/layout"
)

// Format names a layout document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (supported: yaml, json, text)", s)
}

// Ext returns the file extension written for the format.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Encode renders res in the format.
func (f Format) Encode(res *layout.Result) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(res)
	case FormatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatText:
		return []byte(res.Text()), nil
	}
	return nil, fmt.Errorf("unknown output format %q", string(f))
}

// Importer lays out every area of a Source and writes one document per area.
type Importer struct {
	source Source
	hints  hint.Table
	opts   layout.Options
	format Format
	logger *zap.Logger
}

// New constructs an Importer.
//
// Precondition: source and logger must be non-nil; hints may be nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, hints hint.Table, opts layout.Options, format Format, logger *zap.Logger) *Importer {
	if logger == nil {
		panic("importer.New: logger must not be nil")
	}
	return &Importer{source: source, hints: hints, opts: opts, format: format, logger: logger}
}

// Run loads the areas at sourcePath, lays each out with its hint and writes
// <area>.<ext> to outputDir. Layout degradation is logged and does not stop the
// run; load, encode and write failures do. The context is checked between
// areas.
//
// Precondition: sourcePath must satisfy the source's layout requirements;
// outputDir must exist or be creatable.
// Postcondition: returns the written paths in area order, or an error.
func (imp *Importer) Run(ctx context.Context, sourcePath, outputDir string) ([]string, error) {
	overall := time.Now()

	areas, err := imp.source.Load(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Info("areas loaded", zap.Int("areas", len(areas)), zap.String("source", sourcePath))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	var written []string
	used := make(map[string]int)
	for _, a := range areas {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		t0 := time.Now()

		res, err := layout.Build(a, imp.hints.Lookup(a.File), imp.opts, imp.logger)
		if err != nil {
			return written, fmt.Errorf("laying out area %q: %w", a.Name, err)
		}
		data, err := imp.format.Encode(res)
		if err != nil {
			return written, fmt.Errorf("encoding area %q: %w", a.Name, err)
		}

		name := NameToID(a.Name)
		if name == "" {
			name = "area"
		}
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			used[name] = 1
		}
		outPath := filepath.Join(outputDir, name+"."+imp.format.Ext())
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return written, fmt.Errorf("writing area %q to %s: %w", a.Name, outPath, err)
		}
		written = append(written, outPath)

		fields := []zap.Field{
			zap.String("path", outPath),
			zap.Int("rooms", len(res.Rooms)),
			zap.Duration("elapsed", time.Since(t0).Round(time.Millisecond)),
		}
		if !res.Complete() {
			imp.logger.Warn("wrote incomplete layout", append(fields, zap.Ints("unplaced_sections", res.Unplaced))...)
			continue
		}
		imp.logger.Info("wrote layout", fields...)
	}

	imp.logger.Info("import complete",
		zap.Int("files", len(written)),
		zap.Duration("elapsed", time.Since(overall).Round(time.Millisecond)),
	)
	return written, nil
}
