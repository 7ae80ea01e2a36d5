package legacy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scigolib/hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treantkit/treantconv/pkg/errors"
	"github.com/treantkit/treantconv/pkg/model"
)

func TestOpenRejectsNonHDF5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Treant.u1.h5")
	require.NoError(t, os.WriteFile(path, []byte("this is not a binary container"), 0600))

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedContainer))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "Treant.u1.h5"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedContainer))
}

// writeFixture builds a container with the same writer stack the legacy
// reader is built on: groups nested like a Sim statefile and a string
// array dataset standing in for a stored selection.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Sim.u1.h5")

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	require.NoError(t, err)

	_, err = fw.CreateGroup("/universes")
	require.NoError(t, err)
	_, err = fw.CreateGroup("/universes/main")
	require.NoError(t, err)
	_, err = fw.CreateGroup("/universes/main/selections")
	require.NoError(t, err)

	ds, err := fw.CreateDataset("/universes/main/selections/protein",
		hdf5.String, []uint64{2}, hdf5.WithStringSize(16))
	require.NoError(t, err)
	require.NoError(t, ds.Write([]string{"protein", "backbone"}))

	require.NoError(t, fw.Close())
	return path
}

func TestContainerNavigation(t *testing.T) {
	path := writeFixture(t)

	c, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	names, err := c.List("universes")
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, names)

	handles, err := c.List("universes", "main", "selections")
	require.NoError(t, err)
	assert.Equal(t, []string{"protein"}, handles)

	selection, ok, err := c.Strings("universes", "main", "selections", "protein")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"protein", "backbone"}, selection)
}

func TestContainerMissingNodes(t *testing.T) {
	path := writeFixture(t)

	c, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, ok, err := c.Table("meta")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Strings("universes", "main", "selections", "solvent")
	require.NoError(t, err)
	assert.False(t, ok)

	names, err := c.List("no", "such", "group")
	require.NoError(t, err)
	assert.Empty(t, names)

	// a path descending through a dataset resolves to nothing
	_, ok, err = c.Strings("universes", "main", "selections", "protein", "deeper")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContainerShapeMismatch(t *testing.T) {
	path := writeFixture(t)

	c, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	// a group is not a table
	_, _, err = c.Table("universes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedContainer))

	// a dataset is not a group
	_, err = c.List("universes", "main", "selections", "protein")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedContainer))
}

func TestDecodeRealContainerWithoutMeta(t *testing.T) {
	path := writeFixture(t)

	c, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, err = Decode(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedContainer))
}

func TestContainerClose(t *testing.T) {
	c, err := Open(writeFixture(t))
	require.NoError(t, err)
	require.NoError(t, c.Close())
	// hdf5 file handles tolerate double close
	require.NoError(t, c.Close())
}
