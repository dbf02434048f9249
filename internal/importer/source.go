package importer

import "github.com/cory-johannsen/mudmap/internal/area"

// Source loads areas from a format-specific file or directory.
//
// Precondition: path must name a file or directory in the source's format.
// Postcondition: returns at least one valid area, or a non-nil error.
type Source interface {
	Load(path string) ([]*area.Area, error)
}
