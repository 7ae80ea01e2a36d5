package model

import (
	"path/filepath"
	"strings"

	"github.com/treantkit/treantconv/pkg/errors"
)

const (
	// LegacyStatefileExt is the extension of the deprecated HDF5 statefiles
	LegacyStatefileExt = "h5"
	// StatefileExt is the extension of current JSON statefiles
	StatefileExt = "json"
)

// Object kinds with dedicated statefile semantics. The converter
// preserves whatever kind the filename carries and only uses these for
// reporting; unknown kinds convert like plain Treants.
const (
	KindTreant = "Treant"
	KindGroup  = "Group"
	KindSim    = "Sim"
)

// StatefilePathComponents defines the parts of a statefile path, as in:
// {dir}/{kind}.{uuid}.h5
type StatefilePathComponents struct {
	Dir  string
	Kind string
	UUID string
	Ext  string
	_    struct{}
}

// GetStatefilePathComponents parses a legacy statefile path. The base
// name must have exactly three non-empty dot-separated parts and carry
// the legacy extension; anything else fails as a malformed container.
func GetStatefilePathComponents(path string) (StatefilePathComponents, error) {
	base := filepath.Base(path)
	cs := strings.Split(base, ".")
	if len(cs) != 3 || cs[0] == "" || cs[1] == "" || cs[2] == "" {
		return StatefilePathComponents{},
			errors.Newf("statefile name %q does not match {kind}.{uuid}.%s", base, LegacyStatefileExt).
				Wrap(ErrMalformedContainer)
	}
	if cs[2] != LegacyStatefileExt {
		return StatefilePathComponents{},
			errors.Newf("statefile name %q does not carry the legacy .%s extension", base, LegacyStatefileExt).
				Wrap(ErrMalformedContainer)
	}
	return StatefilePathComponents{
		Dir:  filepath.Dir(path),
		Kind: cs[0],
		UUID: cs[1],
		Ext:  cs[2],
	}, nil
}

// StatePath yields the path of the JSON statefile replacing this legacy
// statefile: same directory, same base name, current extension.
func (c StatefilePathComponents) StatePath() string {
	return filepath.Join(c.Dir, strings.Join([]string{c.Kind, c.UUID, StatefileExt}, "."))
}

// IsKnownKind reports whether the filename kind is one the library
// ships specialized semantics for.
func (c StatefilePathComponents) IsKnownKind() bool {
	switch c.Kind {
	case KindTreant, KindGroup, KindSim:
		return true
	}
	return false
}
