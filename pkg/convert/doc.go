// Package convert turns a legacy HDF5 statefile into the JSON statefile
// the current library operates on: one input file, one output file next
// to it, no mutation of the input.
package convert
