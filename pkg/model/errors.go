package model

import (
	"github.com/treantkit/treantconv/pkg/errors"
)

// Failure kinds surfaced by a conversion. Detailed errors wrap one of
// these sentinels, so callers classify with errors.Is and report the
// kind to the user.
var (
	// ErrNotFound indicates the input statefile does not exist
	ErrNotFound = errors.New("statefile not found")

	// ErrMalformedContainer indicates the legacy container cannot be
	// opened, fails the declared schema, or disagrees with its filename
	ErrMalformedContainer = errors.New("malformed legacy container")

	// ErrWrite indicates the JSON statefile cannot be produced
	ErrWrite = errors.New("state file not writable")
)
