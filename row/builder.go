package row

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/arloliu/widecol/internal/hash"
)

type coordinate struct {
	family    int
	qualifier int
}

// Builder accumulates cells in any order and produces a sorted Row.
//
// Builder copies every byte slice it is given. It is not safe for concurrent
// use.
type Builder struct {
	key      []byte
	families []Family
	// famIdx and qualIdx are keyed by xxHash64 and resolved with bytes.Equal,
	// so colliding names stay distinct.
	famIdx  map[uint64][]int
	qualIdx map[int]map[uint64][]int
	cells   map[coordinate]map[int64]int
}

// NewBuilder creates a Builder for the given row key.
func NewBuilder(key []byte) *Builder {
	return &Builder{
		key:     bytes.Clone(key),
		famIdx:  make(map[uint64][]int),
		qualIdx: make(map[int]map[uint64][]int),
		cells:   make(map[coordinate]map[int64]int),
	}
}

// Put records value for (family, qualifier) at timestamp ts. A second Put on
// the same coordinate and timestamp replaces the value.
func (b *Builder) Put(family, qualifier []byte, ts int64, value []byte) *Builder {
	fi := b.family(family)
	qi := b.qualifier(fi, qualifier)
	coord := coordinate{family: fi, qualifier: qi}

	q := &b.families[fi].Qualifiers[qi]
	versions, ok := b.cells[coord]
	if !ok {
		versions = make(map[int64]int)
		b.cells[coord] = versions
	}

	if vi, ok := versions[ts]; ok {
		q.Versions[vi].Value = bytes.Clone(value)
		return b
	}

	versions[ts] = len(q.Versions)
	q.Versions = append(q.Versions, Cell{Timestamp: ts, Value: bytes.Clone(value)})

	return b
}

// PutString is Put with string coordinates and value.
func (b *Builder) PutString(family, qualifier string, ts int64, value string) *Builder {
	return b.Put([]byte(family), []byte(qualifier), ts, []byte(value))
}

func (b *Builder) family(name []byte) int {
	id := hash.ID(name)
	for _, i := range b.famIdx[id] {
		if bytes.Equal(b.families[i].Name, name) {
			return i
		}
	}

	i := len(b.families)
	b.families = append(b.families, Family{Name: bytes.Clone(name)})
	b.famIdx[id] = append(b.famIdx[id], i)

	return i
}

func (b *Builder) qualifier(fi int, name []byte) int {
	idx, ok := b.qualIdx[fi]
	if !ok {
		idx = make(map[uint64][]int)
		b.qualIdx[fi] = idx
	}

	id := hash.ID(name)
	quals := b.families[fi].Qualifiers
	for _, i := range idx[id] {
		if bytes.Equal(quals[i].Name, name) {
			return i
		}
	}

	i := len(quals)
	b.families[fi].Qualifiers = append(quals, Qualifier{Name: bytes.Clone(name)})
	idx[id] = append(idx[id], i)

	return i
}

// Build returns the row with families and qualifiers sorted by name and
// versions sorted newest first. The Builder must not be used afterwards.
func (b *Builder) Build() *Row {
	families := b.families
	for i := range families {
		quals := families[i].Qualifiers
		slices.SortFunc(quals, func(x, y Qualifier) int {
			return bytes.Compare(x.Name, y.Name)
		})
		for j := range quals {
			slices.SortFunc(quals[j].Versions, func(x, y Cell) int {
				return cmp.Compare(y.Timestamp, x.Timestamp)
			})
		}
	}
	slices.SortFunc(families, func(x, y Family) int {
		return bytes.Compare(x.Name, y.Name)
	})

	b.families = nil
	b.famIdx = nil
	b.qualIdx = nil
	b.cells = nil

	return New(b.key, families)
}
