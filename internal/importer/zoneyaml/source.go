// Package zoneyaml reads native zone YAML files, where rooms and exits are
// keyed by string ids, and numbers their rooms for layout.
package zoneyaml

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// yamlZoneFile is the top-level YAML structure for zone files.
type yamlZoneFile struct {
	Zone yamlZone `yaml:"zone"`
}

type yamlZone struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Rooms []yamlRoom `yaml:"rooms"`
}

type yamlRoom struct {
	ID     string            `yaml:"id"`
	Title  string            `yaml:"title"`
	Exits  []yamlExit        `yaml:"exits"`
	Props  map[string]string `yaml:"properties"`
	Sector string            `yaml:"sector"`
}

type yamlExit struct {
	Direction string `yaml:"direction"`
	Target    string `yaml:"target"`
	Locked    bool   `yaml:"locked"`
	Hidden    bool   `yaml:"hidden"`
}

// Source implements importer.Source for zone YAML. Load accepts a single
// .yaml/.yml file or a directory of them, read in name order.
type Source struct{}

// NewSource constructs a Source.
func NewSource() *Source { return &Source{} }

// Load reads the zone file or directory at path.
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
		if files, err = yamlFiles(path); err != nil {
			return nil, err
		}
	}

	var areas []*area.Area
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading zone file %s: %w", f, err)
		}
		a, err := Parse(data, f)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("no zone files found in %s", path)
	}
	return areas, nil
}

// Parse converts one zone document into an area. Rooms are numbered from 1 in
// file order, so hints for a zone refer to rooms by position. Exits to rooms
// outside the zone are dropped; locked exits carry the key "locked".
//
// Precondition: data must be valid YAML conforming to the zone schema.
// Postcondition: Returns a valid area or a non-nil error.
func Parse(data []byte, file string) (*area.Area, error) {
	var zf yamlZoneFile
	if err := yaml.Unmarshal(data, &zf); err != nil {
		return nil, fmt.Errorf("parsing zone YAML %s: %w", file, err)
	}
	yz := zf.Zone

	a := &area.Area{Name: yz.Name, File: filepath.ToSlash(file)}
	if a.Name == "" {
		a.Name = yz.ID
	}

	ids := make(map[string]area.RoomID, len(yz.Rooms))
	for i, yr := range yz.Rooms {
		if yr.ID == "" {
			return nil, fmt.Errorf("zone %s: room %d has no id", file, i+1)
		}
		if _, dup := ids[yr.ID]; dup {
			return nil, fmt.Errorf("zone %s: duplicate room id %q", file, yr.ID)
		}
		ids[yr.ID] = area.RoomID(i + 1)
	}

	for _, yr := range yz.Rooms {
		r := &area.Room{
			ID:     ids[yr.ID],
			Name:   area.StripMarkup(yr.Title),
			Sector: yr.Sector,
		}
		if r.Name == "" {
			r.Name = yr.ID
		}
		if r.Sector == "" {
			r.Sector = yr.Props["sector"]
		}
		var vertical []area.Exit
		for _, ye := range yr.Exits {
			target, ok := ids[ye.Target]
			if !ok {
				continue
			}
			e := area.Exit{
				Direction: area.Direction(strings.ToLower(strings.TrimSpace(ye.Direction))),
				Target:    target,
			}
			if ye.Locked {
				e.Key = "locked"
			}
			if e.Direction.IsVertical() {
				vertical = append(vertical, e)
				continue
			}
			r.Exits = append(r.Exits, e)
		}
		r.AddExtraExits(vertical...)
		a.Rooms = append(a.Rooms, r)
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("validating zone %s: %w", file, err)
	}
	return a, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading zone directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
