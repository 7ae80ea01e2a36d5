package legacy

// Row is a single table row, mapping column names to scalar cells.
type Row map[string]interface{}

// Container gives schema-level access to a legacy statefile: tables,
// string array datasets, and group listings, addressed by path segments
// from the container root.
//
// The production implementation is backed by an HDF5 reader; tests
// decode fabricated containers without touching the binary format.
type Container interface {
	// Table reads all rows of the table at path. ok is false when no
	// object exists there; an object of the wrong shape is an error.
	Table(path ...string) (rows []Row, ok bool, err error)

	// Strings reads the string array dataset at path. ok is false when
	// no object exists there.
	Strings(path ...string) (values []string, ok bool, err error)

	// List names the children of the group at path, sorted. A missing
	// group lists as empty.
	List(path ...string) ([]string, error)

	Close() error
}

// OpenFunc opens a legacy container for reading. The converter takes one
// of these so conversions can run against fabricated containers in tests.
type OpenFunc func(path string) (Container, error)
