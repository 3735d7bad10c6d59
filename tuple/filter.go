package tuple

import (
	"github.com/arloliu/widecol/schema"
)

// FamilyEntry pairs a raw family name with the label emitted for it.
type FamilyEntry struct {
	Raw   []byte
	Label string
}

// FamilyFilter is the ordered family allow-list of a restricted session.
//
// Its order is both the emission order and the source of each tuple's family
// label. The zero value is an empty filter, meaning all families.
type FamilyFilter struct {
	entries []FamilyEntry
}

// NewFamilyFilter splits list on sep and builds one entry per trimmed,
// non-empty name. The raw family is the UTF-8 encoding of the trimmed name
// and the label is the trimmed name itself.
func NewFamilyFilter(list, sep string) FamilyFilter {
	names := schema.Mapping{TupleFamilies: list}.Families(sep)
	if len(names) == 0 {
		return FamilyFilter{}
	}

	entries := make([]FamilyEntry, len(names))
	for i, name := range names {
		entries[i] = FamilyEntry{Raw: []byte(name), Label: name}
	}

	return FamilyFilter{entries: entries}
}

// Len returns the number of entries.
func (f FamilyFilter) Len() int {
	return len(f.entries)
}

// Entries returns the entries in order. The slice must not be modified.
func (f FamilyFilter) Entries() []FamilyEntry {
	return f.entries
}

// Labels returns the labels in order.
func (f FamilyFilter) Labels() []string {
	labels := make([]string, len(f.entries))
	for i, e := range f.entries {
		labels[i] = e.Label
	}

	return labels
}
