package ports

import "go.trai.ch/mortar/internal/core/domain"

// BuildInfoStore keeps records of completed builds so unchanged inputs can
// be recognized without rerunning the toolchain.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get returns the record for a target, or nil when none exists.
	Get(target string) (*domain.BuildRecord, error)

	// Put stores a record, replacing any previous one for the same target.
	Put(record domain.BuildRecord) error
}
