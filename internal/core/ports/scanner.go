package ports

import "go.trai.ch/mortar/internal/core/domain"

// Scanner discovers translation units and their filesystem stamps.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan lists the .cpp sources directly inside dir, sorted by name, each
	// paired with the stamp of its object artifact. The scan never descends
	// into subdirectories and never modifies the filesystem.
	Scan(dir string) ([]domain.Unit, error)

	// Stat returns the stamp for a single path. A missing path yields a
	// zero stamp, not an error.
	Stat(path string) (domain.Stamp, error)
}
