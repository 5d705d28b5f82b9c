package ports

import "go.trai.ch/mortar/internal/core/domain"

// Hasher produces content digests for change detection.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile returns the digest of a single file's contents.
	HashFile(path string) (uint64, error)

	// HashBuildInputs folds the project settings and the contents of every
	// source file into one hex digest. Two calls agree exactly when nothing
	// that influences the build output has changed.
	HashBuildInputs(project domain.Project, sources []string) (string, error)
}
