package convert

import (
	"context"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/treantkit/treantconv/pkg/errors"
	"github.com/treantkit/treantconv/pkg/legacy"
	"github.com/treantkit/treantconv/pkg/model"
)

// Option alters the defaults of a Converter
type Option func(*Converter)

// WithFs sets the filesystem the converter stats inputs and writes
// outputs on
func WithFs(fs afero.Fs) Option {
	return func(c *Converter) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithOpener sets the legacy container opener
func WithOpener(open legacy.OpenFunc) Option {
	return func(c *Converter) {
		if open != nil {
			c.open = open
		}
	}
}

// WithLogger sets a zap logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.l = l
		}
	}
}

// Converter performs statefile conversions. The zero value is not
// usable; build one with New.
type Converter struct {
	fs   afero.Fs
	open legacy.OpenFunc
	l    *zap.Logger
}

// New builds a Converter operating on the real filesystem and HDF5
// reader unless options say otherwise.
func New(opts ...Option) *Converter {
	c := &Converter{
		fs:   afero.NewOsFs(),
		open: legacy.Open,
		l:    zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// Convert reads the legacy statefile at path and writes the equivalent
// JSON statefile beside it, replacing any previous output wholesale.
// It returns the output path.
//
// Failures classify against model.ErrNotFound, model.ErrMalformedContainer
// and model.ErrWrite. The input file is never modified, and no usable
// output is left behind on failure: the document is staged under a
// temporary name and moved over the target only once fully written.
func (c *Converter) Convert(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	components, err := model.GetStatefilePathComponents(path)
	if err != nil {
		return "", err
	}

	if _, err := c.fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf("statefile %q does not exist", path).Wrap(model.ErrNotFound)
		}
		return "", errors.Newf("statefile %q is not readable: %v", path, err).Wrap(model.ErrNotFound)
	}

	container, err := c.open(path)
	if err != nil {
		return "", err
	}
	state, err := legacy.Decode(container)
	if closeErr := container.Close(); closeErr != nil {
		c.l.Warn("closing legacy container", zap.String("path", path), zap.Error(closeErr))
	}
	if err != nil {
		return "", err
	}

	if state.UUID != components.UUID {
		return "", errors.Newf("container uuid %q does not match filename uuid %q",
			state.UUID, components.UUID).Wrap(model.ErrMalformedContainer)
	}
	if !components.IsKnownKind() {
		c.l.Warn("unrecognized object kind, converting as a plain treant",
			zap.String("kind", components.Kind))
	}

	body, err := model.MarshalState(state)
	if err != nil {
		return "", errors.Newf("serializing state for %q: %v", path, err).Wrap(model.ErrWrite)
	}

	target := components.StatePath()
	if err := c.writeState(target, body); err != nil {
		return "", err
	}

	c.l.Info("converted statefile",
		zap.String("input", path),
		zap.String("output", target),
		zap.Int("tags", len(state.Tags)),
		zap.Int("categories", len(state.Category)),
	)
	return target, nil
}

// writeState stages the document under a unique temporary name in the
// target directory, then moves it over the target. Some filesystems
// (afero's MemMapFs, Windows) refuse to rename over an existing file,
// hence the remove before rename.
func (c *Converter) writeState(target string, body []byte) error {
	staging := target + ".tmp-" + ksuid.New().String()
	if err := afero.WriteFile(c.fs, staging, body, 0644); err != nil {
		_ = c.fs.Remove(staging)
		return errors.Newf("writing statefile %q: %v", target, err).Wrap(model.ErrWrite)
	}
	_ = c.fs.Remove(target)
	if err := c.fs.Rename(staging, target); err != nil {
		_ = c.fs.Remove(staging)
		return errors.Newf("moving statefile into place at %q: %v", target, err).Wrap(model.ErrWrite)
	}
	return nil
}
