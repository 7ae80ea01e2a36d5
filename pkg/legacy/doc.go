// Package legacy reads the deprecated HDF5 statefile format.
//
// The legacy format stores its record as PyTables tables: compound
// datasets whose rows map column names to scalar cells. The schema is
// declared statically here and checked while reading; a container that
// does not satisfy it fails with model.ErrMalformedContainer instead of
// a generic lookup error.
package legacy
