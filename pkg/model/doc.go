// Package model describes the persisted state of a Treant, Group or Sim
// object: the in-memory record decoded from a legacy statefile, the JSON
// serialization consumed by the current library, and the statefile naming
// scheme shared by both formats.
package model
