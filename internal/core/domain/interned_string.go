package domain

import "unique"

// InternedString stores one canonical copy of a string via the unique
// package. Scan results, watch batches, and build plans repeat the same few
// paths constantly, so units carry handles instead of copies.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s and returns a handle to it.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the interned value. The zero InternedString yields "".
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// Handle exposes the underlying unique.Handle, which compares in O(1).
func (is InternedString) Handle() unique.Handle[string] {
	return is.h
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
