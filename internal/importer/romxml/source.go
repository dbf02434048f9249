package romxml

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for area XML files. Load accepts either a
// single .xml file or a directory, in which case every .xml file directly
// inside it is read in name order.
type Source struct{}

// NewSource constructs a Source.
func NewSource() *Source { return &Source{} }

// Load reads the area file or directory at path.
//
// Precondition: path must exist.
// Postcondition: returns at least one area or a non-nil error.
func (s *Source) Load(path string) ([]*area.Area, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", path, err)
	}
	files := []string{path}
	if info.IsDir() {
		if files, err = xmlFiles(path); err != nil {
			return nil, err
		}
	}

	var areas []*area.Area
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading area file %s: %w", f, err)
		}
		a, err := Parse(data, f)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("no area files found in %s", path)
	}
	return areas, nil
}

func xmlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
