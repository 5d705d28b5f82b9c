package domain

import "time"

// Stamp records the filesystem state of one path at scan time. A missing
// path has Exists false and a zero ModTime.
type Stamp struct {
	Exists  bool
	ModTime time.Time
}

// Newer reports whether s is strictly newer than other. Equal timestamps are
// not newer: with coarse filesystem clocks two writes can share a timestamp,
// and that race is documented rather than mitigated.
func (s Stamp) Newer(other Stamp) bool {
	return s.ModTime.After(other.ModTime)
}

// Unit pairs one translation unit with its object artifact.
type Unit struct {
	Source      InternedString
	Object      InternedString
	SourceStamp Stamp
	ObjectStamp Stamp
}

// Plan is the work required to bring the target up to date.
type Plan struct {
	// Compiles are the units whose objects must be produced, in scan order.
	Compiles []Unit

	// Link reports whether the target must be relinked.
	Link bool
}

// UpToDate reports whether the plan requires no work.
func (p Plan) UpToDate() bool {
	return !p.Link && len(p.Compiles) == 0
}

// ComputePlan decides which units to compile and whether to relink, given the
// target's stamp and the scanned units.
//
// The target is stale when it is absent, or when any source or any surviving
// object is strictly newer than it. Judging the target against sources is
// what keeps a fresh target up to date even though its objects were deleted
// after the previous link. A stale target forces a link from the complete
// object set, so every absent object is compiled; objects that survived (for
// example after an aborted link) are recompiled only if their source is
// strictly newer.
//
// Zero units yield an empty plan: nothing to build is not an error.
func ComputePlan(target Stamp, units []Unit) Plan {
	if len(units) == 0 {
		return Plan{}
	}

	stale := !target.Exists
	if !stale {
		for _, u := range units {
			if u.SourceStamp.Newer(target) {
				stale = true
				break
			}
			if u.ObjectStamp.Exists && u.ObjectStamp.Newer(target) {
				stale = true
				break
			}
		}
	}

	if !stale {
		return Plan{}
	}

	var compiles []Unit
	for _, u := range units {
		if !u.ObjectStamp.Exists || u.SourceStamp.Newer(u.ObjectStamp) {
			compiles = append(compiles, u)
		}
	}

	return Plan{Compiles: compiles, Link: true}
}
