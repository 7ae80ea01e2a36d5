package model

import (
	"sort"
)

// State is the full persisted record of a single Treant. Group and Sim
// objects reuse the same record with their extra sections filled in;
// empty sections are omitted from the serialized form, except category
// and tags which the current library always expects to be present.
type State struct {
	Name     string            `json:"name"`
	UUID     string            `json:"uuid"`
	Version  string            `json:"version,omitempty"`
	Category map[string]string `json:"category"`
	Tags     []string          `json:"tags"`

	// Group section: member records keyed by member uuid. Members are
	// stored as plain uuid references, never as links to live objects.
	Members map[string]Member `json:"members,omitempty"`

	// Sim section
	MDSVersion string              `json:"mds_version,omitempty"`
	Default    string              `json:"default,omitempty"`
	Universes  map[string]Universe `json:"universes,omitempty"`
	_          struct{}
}

// Member is a relationship record held by a Group, referencing another
// Treant by uuid (the map key in State.Members).
type Member struct {
	Treanttype string `json:"treanttype"`
	Abspath    string `json:"abspath"`
	Relpath    string `json:"relpath,omitempty"`
	_          struct{}
}

// PathPair stores the two path flavors the library keeps for every
// referenced file: absolute, and relative to the object's directory.
type PathPair struct {
	Abspath string `json:"abspath"`
	Relpath string `json:"relpath,omitempty"`
	_       struct{}
}

// Universe describes one named simulation universe of a Sim: its
// topology file, trajectory files, stored atom selections and resnums.
type Universe struct {
	Topology   PathPair            `json:"topology"`
	Trajectory []PathPair          `json:"trajectory"`
	Selections map[string][]string `json:"selections,omitempty"`
	Resnums    []int64             `json:"resnums,omitempty"`
	_          struct{}
}

// NewState returns a State with the always-present sections initialized,
// so an object without tags or categories serializes as {} and [] rather
// than null.
func NewState(name, uuid string) *State {
	return &State{
		Name:     name,
		UUID:     uuid,
		Category: map[string]string{},
		Tags:     []string{},
	}
}

// SetTags replaces the tag set. Duplicates are dropped and the result is
// sorted, so serialization is deterministic regardless of table order.
func (s *State) SetTags(tags []string) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	s.Tags = out
}
