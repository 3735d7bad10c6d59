package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/format"
)

func TestNewOutputSchema(t *testing.T) {
	s, err := NewOutputSchema(
		Field{Name: "rowkey", Type: format.TypeString},
		Field{Name: FamilyField, Type: format.TypeString},
		Field{Name: ColumnField, Type: format.TypeString},
		Field{Name: ValueField, Type: format.TypeLong},
		Field{Name: TimestampField, Type: format.TypeLong},
	)
	require.NoError(t, err)
	require.Equal(t, 5, s.Len())
	require.Equal(t, 0, s.IndexOf("rowkey"))
	require.Equal(t, 4, s.IndexOf(TimestampField))
	require.Equal(t, -1, s.IndexOf("timestamp"), "lookup is case-sensitive")
	require.Equal(t, format.TypeLong, s.Field(3).Type)
	require.Equal(t, []string{"rowkey", "Family", "Column", "Value", "Timestamp"}, s.Names())
}

func TestNewOutputSchema_Invalid(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		_, err := NewOutputSchemaFromNames("k", "Value", "Value")
		require.ErrorIs(t, err, errs.ErrDuplicateField)

		var cfgErr *errs.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		require.Contains(t, cfgErr.Op, "Value")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewOutputSchemaFromNames("k", "")
		require.ErrorIs(t, err, errs.ErrEmptyFieldName)
	})

	t.Run("empty schema is valid", func(t *testing.T) {
		s, err := NewOutputSchemaFromNames()
		require.NoError(t, err)
		require.Equal(t, 0, s.Len())
	})
}

func TestNewOutputSchema_CopiesFields(t *testing.T) {
	fields := []Field{{Name: "a"}, {Name: "b"}}
	s, err := NewOutputSchema(fields...)
	require.NoError(t, err)

	fields[0].Name = "z"
	require.Equal(t, "a", s.Field(0).Name)
}

func TestRole_String(t *testing.T) {
	names := make([]string, 0, len(Roles))
	for _, r := range Roles {
		names = append(names, r.String())
	}
	require.Equal(t, []string{"Key", "Family", "Column", "Value", "Timestamp"}, names)
	require.Equal(t, "Unknown", Role(42).String())
}

func TestMapping_Families(t *testing.T) {
	tests := []struct {
		name     string
		families string
		sep      string
		want     []string
	}{
		{"empty", "", ",", nil},
		{"blank", "   ", ",", nil},
		{"single", "cf1", ",", []string{"cf1"}},
		{"trimmed", " cf1 , cf2,cf3 ", ",", []string{"cf1", "cf2", "cf3"}},
		{"drops empty entries", "cf1,,cf2,", ",", []string{"cf1", "cf2"}},
		{"custom separator", "a:b;c", ";", []string{"a:b", "c"}},
		{"empty separator", "cf1", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Mapping{TupleFamilies: tt.families}
			require.Equal(t, tt.want, m.Families(tt.sep))
		})
	}
}

func TestMapping_IsRestricted(t *testing.T) {
	require.False(t, Mapping{}.IsRestricted())
	require.False(t, Mapping{TupleFamilies: " "}.IsRestricted())
	require.True(t, Mapping{TupleFamilies: "cf1"}.IsRestricted())
}

func TestRoleDescriptors(t *testing.T) {
	byAlias := map[string]FieldDescriptor{
		FamilyField: {Type: format.TypeString},
		ColumnField: {Alias: "qualifier", Type: format.TypeString},
		ValueField:  {Type: format.TypeLong, Compression: format.CompressionS2},
		"unrelated": {Type: format.TypeBinary},
	}

	d := RoleDescriptorsFromAliases(byAlias)
	require.Equal(t, "Family", d.Family.Alias)
	require.Equal(t, "qualifier", d.Column.Alias)
	require.Equal(t, format.TypeLong, d.Value.Type)
	require.Equal(t, format.CompressionS2, d.Value.Compression)

	desc, ok := d.For(RoleValue)
	require.True(t, ok)
	require.Equal(t, format.TypeLong, desc.Type)

	_, ok = d.For(RoleKey)
	require.False(t, ok)
	_, ok = d.For(RoleTimestamp)
	require.False(t, ok)

	empty := RoleDescriptorsFromAliases(nil)
	require.Equal(t, format.TypeUnknown, empty.Value.Type)
}

func TestFieldDescriptor_Name(t *testing.T) {
	require.Equal(t, "amount", FieldDescriptor{Alias: "amount"}.Name("Value"))
	require.Equal(t, "Value", FieldDescriptor{}.Name("Value"))
}
