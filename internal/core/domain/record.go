package domain

import "time"

// BuildRecord captures the input fingerprint of one completed build cycle.
// Watch mode uses it to suppress rebuilds for events that changed timestamps
// but not content. Records live only for the process: on disk, the objects
// and the target executable remain the sole build state.
type BuildRecord struct {
	Target    string
	InputHash string
	Timestamp time.Time
}
