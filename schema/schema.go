// Package schema defines the inputs of a decoding session: the fixed output
// schema, the table mapping and the per-role field descriptors.
//
// All types in this package are immutable after construction and safe to
// share between decoding sessions.
package schema

import (
	"strings"

	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/format"
)

// Well-known output field names bound to tuple roles.
const (
	FamilyField    = "Family"
	ColumnField    = "Column"
	ValueField     = "Value"
	TimestampField = "Timestamp"
)

// DefaultFamilySeparator separates entries of Mapping.TupleFamilies.
const DefaultFamilySeparator = ","

// Role is one of the five tuple positions a schema field may be bound to.
type Role uint8

const (
	RoleKey Role = iota
	RoleFamily
	RoleColumn
	RoleValue
	RoleTimestamp
	roleCount
)

// Roles lists every role in tuple-resolution order.
var Roles = [roleCount]Role{RoleKey, RoleFamily, RoleColumn, RoleValue, RoleTimestamp}

func (r Role) String() string {
	switch r {
	case RoleKey:
		return "Key"
	case RoleFamily:
		return FamilyField
	case RoleColumn:
		return ColumnField
	case RoleValue:
		return ValueField
	case RoleTimestamp:
		return TimestampField
	default:
		return "Unknown"
	}
}

// Field is a named output field.
type Field struct {
	Name string
	// Type is informational for downstream stages; decoding uses descriptors.
	Type format.FieldType
}

// OutputSchema is the ordered list of named fields every emitted tuple follows.
type OutputSchema struct {
	fields []Field
	byName map[string]int
}

// NewOutputSchema creates an OutputSchema from fields in order.
//
// Returns a *errs.ConfigurationError wrapping errs.ErrEmptyFieldName or
// errs.ErrDuplicateField when names are empty or repeated. Names are
// case-sensitive.
func NewOutputSchema(fields ...Field) (*OutputSchema, error) {
	s := &OutputSchema{
		fields: make([]Field, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)

	for i, f := range s.fields {
		if f.Name == "" {
			return nil, errs.NewConfigurationError("output schema", errs.ErrEmptyFieldName)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, errs.NewConfigurationError("output schema "+f.Name, errs.ErrDuplicateField)
		}
		s.byName[f.Name] = i
	}

	return s, nil
}

// NewOutputSchemaFromNames creates an OutputSchema of untyped fields.
func NewOutputSchemaFromNames(names ...string) (*OutputSchema, error) {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n}
	}

	return NewOutputSchema(fields...)
}

// Len returns the number of fields, which is the length of every tuple.
func (s *OutputSchema) Len() int {
	return len(s.fields)
}

// IndexOf returns the position of the named field, or -1.
func (s *OutputSchema) IndexOf(name string) int {
	if i, ok := s.byName[name]; ok {
		return i
	}

	return -1
}

// Field returns the field at position i.
func (s *OutputSchema) Field(i int) Field {
	return s.fields[i]
}

// Names returns the field names in order.
func (s *OutputSchema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}

	return names
}

// FieldDescriptor describes how the raw bytes bound to one role are decoded.
type FieldDescriptor struct {
	// Alias is the name the catalog knows the field by.
	Alias string
	// Family and Qualifier locate the source column, when the descriptor
	// belongs to a single column.
	Family    string
	Qualifier string
	Type      format.FieldType
	// Compression is the codec the writer applied to the cell payload.
	Compression format.CompressionType
}

// Name returns the alias, or fallback when the descriptor has none.
func (d FieldDescriptor) Name(fallback string) string {
	if d.Alias != "" {
		return d.Alias
	}

	return fallback
}

// RoleDescriptors holds the descriptors for the roles decoded from bytes.
//
// The key is decoded through the mapping's key type and the timestamp is
// emitted raw, so neither has a descriptor here.
type RoleDescriptors struct {
	Family FieldDescriptor
	Column FieldDescriptor
	Value  FieldDescriptor
}

// For returns the descriptor for role and whether the role has one.
func (d RoleDescriptors) For(role Role) (FieldDescriptor, bool) {
	switch role { //nolint: exhaustive
	case RoleFamily:
		return d.Family, true
	case RoleColumn:
		return d.Column, true
	case RoleValue:
		return d.Value, true
	default:
		return FieldDescriptor{}, false
	}
}

// RoleDescriptorsFromAliases picks the role descriptors out of an alias-keyed
// catalog view, where the aliases equal the role field names ("Family",
// "Column", "Value"). Missing aliases leave the zero descriptor.
func RoleDescriptorsFromAliases(byAlias map[string]FieldDescriptor) RoleDescriptors {
	var d RoleDescriptors
	if desc, ok := byAlias[FamilyField]; ok {
		d.Family = withAlias(desc, FamilyField)
	}
	if desc, ok := byAlias[ColumnField]; ok {
		d.Column = withAlias(desc, ColumnField)
	}
	if desc, ok := byAlias[ValueField]; ok {
		d.Value = withAlias(desc, ValueField)
	}

	return d
}

func withAlias(d FieldDescriptor, alias string) FieldDescriptor {
	if d.Alias == "" {
		d.Alias = alias
	}

	return d
}

// Mapping describes how rows of one table map onto tuple roles.
type Mapping struct {
	TableName   string
	MappingName string
	// KeyName is the output field the decoded row key is written to.
	KeyName string
	KeyType format.KeyType
	// TupleFamilies restricts emission to the listed families, in order.
	// Empty means every family present in the row.
	TupleFamilies string
}

// IsRestricted reports whether the mapping restricts emission to a family list.
func (m Mapping) IsRestricted() bool {
	return strings.TrimSpace(m.TupleFamilies) != ""
}

// Families splits TupleFamilies on sep and trims each entry. Empty entries
// are dropped.
func (m Mapping) Families(sep string) []string {
	if !m.IsRestricted() || sep == "" {
		return nil
	}

	parts := strings.Split(m.TupleFamilies, sep)
	families := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			families = append(families, p)
		}
	}

	return families
}
