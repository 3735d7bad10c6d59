// Package layout resolves where each tuple role lands in the output schema.
//
// A role whose field is missing from the schema resolves to Absent; that is
// how a caller opts out of emitting it, not an error.
package layout

import (
	"fmt"
	"strings"

	"github.com/arloliu/widecol/schema"
)

// Absent marks a role that is not part of the output schema.
const Absent = -1

// Schema is the part of an output schema the resolver needs.
//
// *schema.OutputSchema implements it; IndexOf must be case-sensitive and
// return -1 for unknown names.
type Schema interface {
	Len() int
	IndexOf(name string) int
}

var _ Schema = (*schema.OutputSchema)(nil)

// RoleIndex holds the output position of every role.
type RoleIndex struct {
	positions [len(schema.Roles)]int
}

// Resolve looks up the key field and the four well-known role fields in s.
//
// It performs at most one IndexOf call per role and never fails: duplicate
// names are rejected when the schema is built. An empty key name resolves the
// key role to Absent without a lookup.
func Resolve(s Schema, m schema.Mapping) RoleIndex {
	var idx RoleIndex

	for _, role := range schema.Roles {
		name := roleField(role, m)
		if name == "" {
			idx.positions[role] = Absent
			continue
		}

		pos := s.IndexOf(name)
		if pos < 0 || pos >= s.Len() {
			pos = Absent
		}
		idx.positions[role] = pos
	}

	return idx
}

func roleField(role schema.Role, m schema.Mapping) string {
	switch role { //nolint: exhaustive
	case schema.RoleKey:
		return m.KeyName
	case schema.RoleFamily:
		return schema.FamilyField
	case schema.RoleColumn:
		return schema.ColumnField
	case schema.RoleValue:
		return schema.ValueField
	case schema.RoleTimestamp:
		return schema.TimestampField
	default:
		return ""
	}
}

// Position returns the output position of role, or Absent.
func (r RoleIndex) Position(role schema.Role) int {
	if int(role) >= len(r.positions) {
		return Absent
	}

	return r.positions[role]
}

// Has reports whether role is part of the output.
func (r RoleIndex) Has(role schema.Role) bool {
	return r.Position(role) != Absent
}

func (r RoleIndex) String() string {
	var sb strings.Builder
	for i, role := range schema.Roles {
		if i > 0 {
			sb.WriteByte(' ')
		}
		pos := r.positions[role]
		if pos == Absent {
			fmt.Fprintf(&sb, "%s=absent", role)
		} else {
			fmt.Fprintf(&sb, "%s=%d", role, pos)
		}
	}

	return sb.String()
}
