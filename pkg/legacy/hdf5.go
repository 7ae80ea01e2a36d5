package legacy

import (
	"sort"

	"github.com/scigolib/hdf5"

	"github.com/treantkit/treantconv/pkg/errors"
	"github.com/treantkit/treantconv/pkg/model"
)

// Open opens a legacy HDF5 statefile for reading. Any failure to open or
// parse the container surfaces as model.ErrMalformedContainer; existence
// of the path is the caller's concern.
func Open(path string) (Container, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, errors.Newf("opening legacy container %q: %v", path, err).
			Wrap(model.ErrMalformedContainer)
	}
	return &hdf5Container{f: f}, nil
}

var _ OpenFunc = Open

type hdf5Container struct {
	f *hdf5.File
}

// resolve walks group children by name from the root. ok is false when
// any path segment is missing.
func (c *hdf5Container) resolve(path ...string) (hdf5.Object, bool) {
	var obj hdf5.Object = c.f.Root()
	for _, name := range path {
		group, isGroup := obj.(*hdf5.Group)
		if !isGroup {
			return nil, false
		}
		var next hdf5.Object
		for _, child := range group.Children() {
			if child.Name() == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		obj = next
	}
	return obj, true
}

func (c *hdf5Container) Table(path ...string) ([]Row, bool, error) {
	obj, ok := c.resolve(path...)
	if !ok {
		return nil, false, nil
	}
	ds, isDataset := obj.(*hdf5.Dataset)
	if !isDataset {
		return nil, false, errors.Newf("node %v is a group, expected a table", path).
			Wrap(model.ErrMalformedContainer)
	}
	values, err := ds.ReadCompound()
	if err != nil {
		return nil, false, errors.Newf("reading table %v: %v", path, err).
			Wrap(model.ErrMalformedContainer)
	}
	rows := make([]Row, len(values))
	for i, value := range values {
		row := make(Row, len(value))
		for name, cell := range value {
			row[name] = cell
		}
		rows[i] = row
	}
	return rows, true, nil
}

func (c *hdf5Container) Strings(path ...string) ([]string, bool, error) {
	obj, ok := c.resolve(path...)
	if !ok {
		return nil, false, nil
	}
	ds, isDataset := obj.(*hdf5.Dataset)
	if !isDataset {
		return nil, false, errors.Newf("node %v is a group, expected a string array", path).
			Wrap(model.ErrMalformedContainer)
	}
	values, err := ds.ReadStrings()
	if err != nil {
		return nil, false, errors.Newf("reading string array %v: %v", path, err).
			Wrap(model.ErrMalformedContainer)
	}
	return values, true, nil
}

func (c *hdf5Container) List(path ...string) ([]string, error) {
	obj, ok := c.resolve(path...)
	if !ok {
		return nil, nil
	}
	group, isGroup := obj.(*hdf5.Group)
	if !isGroup {
		return nil, errors.Newf("node %v is a dataset, expected a group", path).
			Wrap(model.ErrMalformedContainer)
	}
	names := make([]string, 0, len(group.Children()))
	for _, child := range group.Children() {
		names = append(names, child.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (c *hdf5Container) Close() error {
	return c.f.Close()
}
