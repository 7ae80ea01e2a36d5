package legacy

import (
	"github.com/spf13/cast"

	"github.com/treantkit/treantconv/pkg/errors"
	"github.com/treantkit/treantconv/pkg/model"
)

// tableSpec declares the expected columns of one legacy table. Every
// table the decoder touches is listed here; a present table missing a
// declared column is a schema violation.
type tableSpec struct {
	name string
	cols []string
}

var (
	metaTable       = tableSpec{name: "meta", cols: []string{"name", "uuid"}}
	versionTable    = tableSpec{name: "version", cols: []string{"version"}}
	tagsTable       = tableSpec{name: "tags", cols: []string{"tag"}}
	categoriesTable = tableSpec{name: "categories", cols: []string{"category", "value"}}
	membersTable    = tableSpec{name: "members", cols: []string{"uuid", "treanttype", "abspath", "relCont"}}
	mdsVersionTable = tableSpec{name: "mds_version", cols: []string{"version"}}
	defaultTable    = tableSpec{name: "default", cols: []string{"default"}}
	topologyTable   = tableSpec{name: "topology", cols: []string{"abspath", "relCont"}}
	trajectoryTable = tableSpec{name: "trajectory", cols: []string{"abspath", "relCont"}}
	resnumsTable    = tableSpec{name: "resnums", cols: []string{"resnum"}}
)

const (
	universesGroup  = "universes"
	selectionsGroup = "selections"

	// noneLiteral is how the legacy writer spells an unset default universe
	noneLiteral = "None"
)

// readTable reads the spec'd table under the given group path and checks
// the declared columns on every row.
func readTable(c Container, spec tableSpec, group ...string) ([]Row, bool, error) {
	path := append(append([]string{}, group...), spec.name)
	rows, ok, err := c.Table(path...)
	if err != nil || !ok {
		return nil, ok, err
	}
	for _, row := range rows {
		for _, col := range spec.cols {
			if _, found := row[col]; !found {
				return nil, true, errors.Newf("table %v is missing column %q", path, col).
					Wrap(model.ErrMalformedContainer)
			}
		}
	}
	return rows, true, nil
}

func stringCell(row Row, spec tableSpec, col string) (string, error) {
	s, err := cast.ToStringE(row[col])
	if err != nil {
		return "", errors.Newf("table %q column %q holds %T, expected a string", spec.name, col, row[col]).
			Wrap(model.ErrMalformedContainer)
	}
	return s, nil
}

func intCell(row Row, spec tableSpec, col string) (int64, error) {
	n, err := cast.ToInt64E(row[col])
	if err != nil {
		return 0, errors.Newf("table %q column %q holds %T, expected an integer", spec.name, col, row[col]).
			Wrap(model.ErrMalformedContainer)
	}
	return n, nil
}

// Decode reads the full legacy record out of a container. The meta table
// is required; every other section decodes to its empty value when the
// legacy writer never created it.
func Decode(c Container) (*model.State, error) {
	st, err := decodeMeta(c)
	if err != nil {
		return nil, err
	}
	if err := decodeVersions(c, st); err != nil {
		return nil, err
	}
	if err := decodeTags(c, st); err != nil {
		return nil, err
	}
	if err := decodeCategories(c, st); err != nil {
		return nil, err
	}
	if err := decodeMembers(c, st); err != nil {
		return nil, err
	}
	if err := decodeSim(c, st); err != nil {
		return nil, err
	}
	return st, nil
}

func decodeMeta(c Container) (*model.State, error) {
	rows, ok, err := readTable(c, metaTable)
	if err != nil {
		return nil, err
	}
	if !ok || len(rows) == 0 {
		return nil, errors.New(`missing required table "meta"`).Wrap(model.ErrMalformedContainer)
	}
	name, err := stringCell(rows[0], metaTable, "name")
	if err != nil {
		return nil, err
	}
	uuid, err := stringCell(rows[0], metaTable, "uuid")
	if err != nil {
		return nil, err
	}
	if uuid == "" {
		return nil, errors.New(`table "meta" holds an empty uuid`).Wrap(model.ErrMalformedContainer)
	}
	return model.NewState(name, uuid), nil
}

func decodeVersions(c Container, st *model.State) error {
	rows, ok, err := readTable(c, versionTable)
	if err != nil {
		return err
	}
	if ok && len(rows) > 0 {
		if st.Version, err = stringCell(rows[0], versionTable, "version"); err != nil {
			return err
		}
	}
	rows, ok, err = readTable(c, mdsVersionTable)
	if err != nil {
		return err
	}
	if ok && len(rows) > 0 {
		if st.MDSVersion, err = stringCell(rows[0], mdsVersionTable, "version"); err != nil {
			return err
		}
	}
	return nil
}

func decodeTags(c Container, st *model.State) error {
	rows, ok, err := readTable(c, tagsTable)
	if err != nil || !ok {
		return err
	}
	tags := make([]string, 0, len(rows))
	for _, row := range rows {
		tag, err := stringCell(row, tagsTable, "tag")
		if err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	st.SetTags(tags)
	return nil
}

func decodeCategories(c Container, st *model.State) error {
	rows, ok, err := readTable(c, categoriesTable)
	if err != nil || !ok {
		return err
	}
	for _, row := range rows {
		key, err := stringCell(row, categoriesTable, "category")
		if err != nil {
			return err
		}
		value, err := stringCell(row, categoriesTable, "value")
		if err != nil {
			return err
		}
		st.Category[key] = value
	}
	return nil
}

func decodeMembers(c Container, st *model.State) error {
	rows, ok, err := readTable(c, membersTable)
	if err != nil || !ok {
		return err
	}
	members := make(map[string]model.Member, len(rows))
	for _, row := range rows {
		uuid, err := stringCell(row, membersTable, "uuid")
		if err != nil {
			return err
		}
		treanttype, err := stringCell(row, membersTable, "treanttype")
		if err != nil {
			return err
		}
		abspath, err := stringCell(row, membersTable, "abspath")
		if err != nil {
			return err
		}
		relpath, err := stringCell(row, membersTable, "relCont")
		if err != nil {
			return err
		}
		members[uuid] = model.Member{
			Treanttype: treanttype,
			Abspath:    abspath,
			Relpath:    relpath,
		}
	}
	if len(members) > 0 {
		st.Members = members
	}
	return nil
}

func decodeSim(c Container, st *model.State) error {
	if err := decodeDefault(c, st); err != nil {
		return err
	}
	names, err := c.List(universesGroup)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	st.Universes = make(map[string]model.Universe, len(names))
	for _, name := range names {
		universe, err := decodeUniverse(c, name)
		if err != nil {
			return err
		}
		st.Universes[name] = universe
	}
	return nil
}

func decodeDefault(c Container, st *model.State) error {
	rows, ok, err := readTable(c, defaultTable)
	if err != nil || !ok || len(rows) == 0 {
		return err
	}
	value, err := stringCell(rows[0], defaultTable, "default")
	if err != nil {
		return err
	}
	if value != noneLiteral {
		st.Default = value
	}
	return nil
}

func decodeUniverse(c Container, name string) (model.Universe, error) {
	var universe model.Universe

	// a universe without topology and trajectory tables was never valid
	rows, ok, err := readTable(c, topologyTable, universesGroup, name)
	if err != nil {
		return universe, err
	}
	if !ok || len(rows) == 0 {
		return universe, errors.Newf("universe %q has no topology table", name).
			Wrap(model.ErrMalformedContainer)
	}
	if universe.Topology, err = pathPair(rows[0], topologyTable); err != nil {
		return universe, err
	}

	rows, ok, err = readTable(c, trajectoryTable, universesGroup, name)
	if err != nil {
		return universe, err
	}
	if !ok {
		return universe, errors.Newf("universe %q has no trajectory table", name).
			Wrap(model.ErrMalformedContainer)
	}
	universe.Trajectory = make([]model.PathPair, 0, len(rows))
	for _, row := range rows {
		pair, err := pathPair(row, trajectoryTable)
		if err != nil {
			return universe, err
		}
		universe.Trajectory = append(universe.Trajectory, pair)
	}

	rows, ok, err = readTable(c, resnumsTable, universesGroup, name)
	if err != nil {
		return universe, err
	}
	if ok && len(rows) > 0 {
		universe.Resnums = make([]int64, 0, len(rows))
		for _, row := range rows {
			resnum, err := intCell(row, resnumsTable, "resnum")
			if err != nil {
				return universe, err
			}
			universe.Resnums = append(universe.Resnums, resnum)
		}
	}

	handles, err := c.List(universesGroup, name, selectionsGroup)
	if err != nil {
		return universe, err
	}
	if len(handles) > 0 {
		universe.Selections = make(map[string][]string, len(handles))
		for _, handle := range handles {
			selection, ok, err := c.Strings(universesGroup, name, selectionsGroup, handle)
			if err != nil {
				return universe, err
			}
			if !ok {
				continue
			}
			universe.Selections[handle] = selection
		}
	}
	return universe, nil
}

func pathPair(row Row, spec tableSpec) (model.PathPair, error) {
	abspath, err := stringCell(row, spec, "abspath")
	if err != nil {
		return model.PathPair{}, err
	}
	relpath, err := stringCell(row, spec, "relCont")
	if err != nil {
		return model.PathPair{}, err
	}
	return model.PathPair{Abspath: abspath, Relpath: relpath}, nil
}
