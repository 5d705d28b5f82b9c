// Package fs provides filesystem adapters for source discovery and input hashing.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/mortar/internal/core/domain"
	"go.trai.ch/mortar/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Scanner = (*Scanner)(nil)

// Scanner discovers compilation units in a project directory.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan lists the .cpp files directly inside dir and pairs each with its
// object path and the modification stamps of both. Subdirectories are not
// entered. Results follow os.ReadDir's name ordering, so they are sorted.
func (s *Scanner) Scan(dir string) ([]domain.Unit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read project directory"), "dir", dir)
	}

	var units []domain.Unit
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsSource(entry.Name()) {
			continue
		}

		source := filepath.Join(dir, entry.Name())
		object := domain.ObjectFor(source)

		sourceStamp, err := s.Stat(source)
		if err != nil {
			return nil, err
		}
		objectStamp, err := s.Stat(object)
		if err != nil {
			return nil, err
		}

		units = append(units, domain.Unit{
			Source:      domain.NewInternedString(source),
			Object:      domain.NewInternedString(object),
			SourceStamp: sourceStamp,
			ObjectStamp: objectStamp,
		})
	}

	return units, nil
}

// Stat returns the modification stamp for path. A missing path yields the
// zero stamp rather than an error.
func (s *Scanner) Stat(path string) (domain.Stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Stamp{}, nil
		}
		return domain.Stamp{}, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	return domain.Stamp{Exists: true, ModTime: info.ModTime()}, nil
}
