package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treantkit/treantconv/pkg/errors"
)

func TestGetStatefilePathComponents(t *testing.T) {
	cs, err := GetStatefilePathComponents("/data/runs/Sim.1a2b3c.h5")
	require.NoError(t, err)
	assert.Equal(t, "/data/runs", cs.Dir)
	assert.Equal(t, "Sim", cs.Kind)
	assert.Equal(t, "1a2b3c", cs.UUID)
	assert.Equal(t, "h5", cs.Ext)
	assert.True(t, cs.IsKnownKind())

	// full 36-char uuids, as written by the original library
	cs, err = GetStatefilePathComponents("Treant.0f690642-5157-4e8a-92a6-1d9d0e0f0f0a.h5")
	require.NoError(t, err)
	assert.Equal(t, ".", cs.Dir)
	assert.Equal(t, "0f690642-5157-4e8a-92a6-1d9d0e0f0f0a", cs.UUID)
}

func TestGetStatefilePathComponentsRejects(t *testing.T) {
	bad := []string{
		"Sim.1a2b3c.json",  // not the legacy extension
		"Sim.1a2b3c",       // no extension
		"Sim.h5",           // no uuid
		".1a2b3c.h5",       // no kind
		"Sim.1a.2b3c.h5",   // dot inside the uuid part
		"Sim..h5",          // empty uuid
		"notastatefile.h5", // single part plus extension
	}
	for _, name := range bad {
		_, err := GetStatefilePathComponents(name)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrMalformedContainer), name)
	}
}

func TestStatePath(t *testing.T) {
	cs, err := GetStatefilePathComponents(filepath.Join("some", "dir", "Group.abc123.h5"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("some", "dir", "Group.abc123.json"), cs.StatePath())
}

func TestIsKnownKind(t *testing.T) {
	for _, kind := range []string{KindTreant, KindGroup, KindSim} {
		cs, err := GetStatefilePathComponents(kind + ".u1.h5")
		require.NoError(t, err)
		assert.True(t, cs.IsKnownKind())
	}
	cs, err := GetStatefilePathComponents("Container.u1.h5")
	require.NoError(t, err)
	assert.False(t, cs.IsKnownKind())
}
