package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Source loads a dataset from a file of a particular format.
type Source interface {
	CanLoad(filename string) bool
	Load(path string, opt Options) (*Dataset, error)
}

var registry []Source

// Register adds a source implementation to the registry.
func Register(s Source) {
	registry = append(registry, s)
}

// ErrUnsupported indicates no registered source handles the file.
var ErrUnsupported = errors.New("unsupported dataset format")

// LoadFile selects a source by filename and loads the dataset.
// Fetch failures are returned to the caller as-is; nothing is retried.
func LoadFile(path string, opt Options) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	for _, s := range registry {
		if s.CanLoad(path) {
			return s.Load(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(csvSource{})
	Register(xlsxSource{})
}
