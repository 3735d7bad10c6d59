// Package row provides the read-only view of one stored wide-column row.
//
// A Row holds its families in byte-lexicographic order, each family holds its
// qualifiers in byte-lexicographic order, and each qualifier holds one or more
// timestamped versions. This is the order the store returns cells in.
//
// Rows are built with a Builder, or decoded by a store client into the same
// structure. The tuple decoder only reads a Row and never retains it.
package row

import (
	"bytes"

	"github.com/arloliu/widecol/internal/hash"
)

// Cell is one timestamped version of a qualifier.
type Cell struct {
	Timestamp int64
	Value     []byte
}

// Qualifier is a column qualifier and its stored versions.
type Qualifier struct {
	Name     []byte
	Versions []Cell
}

// MostRecent returns the version with the greatest timestamp.
//
// The store's own version ordering is not relied upon. ok is false when there
// are no versions.
func (q Qualifier) MostRecent() (Cell, bool) {
	return MostRecent(q.Versions)
}

// MostRecent returns the cell with the greatest timestamp in versions.
func MostRecent(versions []Cell) (Cell, bool) {
	if len(versions) == 0 {
		return Cell{}, false
	}

	latest := versions[0]
	for _, c := range versions[1:] {
		if c.Timestamp > latest.Timestamp {
			latest = c
		}
	}

	return latest, true
}

// Family is a column family and its qualifiers.
type Family struct {
	Name       []byte
	Qualifiers []Qualifier
}

// Row is a row key and its families.
type Row struct {
	Key      []byte
	Families []Family

	// byName maps the xxHash64 of a family name to its positions in Families.
	byName map[uint64][]int
}

// New creates a Row from families that are already sorted, as a store client
// delivers them. Use a Builder when the cells arrive unordered.
func New(key []byte, families []Family) *Row {
	r := &Row{Key: key, Families: families}
	r.index()

	return r
}

func (r *Row) index() {
	r.byName = make(map[uint64][]int, len(r.Families))
	for i := range r.Families {
		id := hash.ID(r.Families[i].Name)
		r.byName[id] = append(r.byName[id], i)
	}
}

// Family returns the family with the given raw name.
func (r *Row) Family(name []byte) (*Family, bool) {
	if r.byName == nil {
		// Row literal without New: scan instead of mutating a shared row
		for i := range r.Families {
			if bytes.Equal(r.Families[i].Name, name) {
				return &r.Families[i], true
			}
		}

		return nil, false
	}

	for _, i := range r.byName[hash.ID(name)] {
		if bytes.Equal(r.Families[i].Name, name) {
			return &r.Families[i], true
		}
	}

	return nil, false
}

// CellCount returns the number of (family, qualifier) pairs in the row.
func (r *Row) CellCount() int {
	n := 0
	for i := range r.Families {
		n += len(r.Families[i].Qualifiers)
	}

	return n
}
