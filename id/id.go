// Package id generates and validates job identifiers.
//
// Job ids are opaque strings shared byte-for-byte with workers written in
// other languages, so they are plain UUID strings rather than a typed
// wrapper. The only structural rule is that an id must not contain the key
// separator, because ids are embedded verbatim into store keys.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/muaviaUsmani/Bananas"
)

// Separator joins the segments of every store key and channel name.
const Separator = ":"

// maxLen keeps a single key segment within a sane bound.
const maxLen = 256

// Generator produces a new unique job id.
type Generator func() string

// UUID returns a random (version 4) UUID string. It is the default
// generator and matches the ids produced by the existing workers and SDKs.
func UUID() string { return uuid.NewString() }

// UUIDv7 returns a time-ordered (version 7) UUID string. Ids sort by
// creation time, which keeps related keys close together in scans.
func UUIDv7() string {
	u, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return u.String()
}

// New generates an id with the default generator.
func New() string { return UUID() }

// Validate reports whether s can be used as a job id.
func Validate(s string) error {
	switch {
	case s == "":
		return fmt.Errorf("%w: empty", bananas.ErrInvalidID)
	case len(s) > maxLen:
		return fmt.Errorf("%w: %d bytes exceeds %d", bananas.ErrInvalidID, len(s), maxLen)
	case strings.Contains(s, Separator):
		return fmt.Errorf("%w: %q contains key separator %q", bananas.ErrInvalidID, s, Separator)
	}
	return nil
}
