package row

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMostRecent(t *testing.T) {
	t.Run("picks numeric maximum regardless of order", func(t *testing.T) {
		versions := []Cell{
			{Timestamp: 100, Value: []byte("v1")},
			{Timestamp: 300, Value: []byte("v3")},
			{Timestamp: 200, Value: []byte("v2")},
		}
		c, ok := MostRecent(versions)
		require.True(t, ok)
		require.Equal(t, int64(300), c.Timestamp)
		require.Equal(t, []byte("v3"), c.Value)
	})

	t.Run("negative timestamps", func(t *testing.T) {
		c, ok := MostRecent([]Cell{{Timestamp: -5}, {Timestamp: -1}, {Timestamp: -9}})
		require.True(t, ok)
		require.Equal(t, int64(-1), c.Timestamp)
	})

	t.Run("no versions", func(t *testing.T) {
		_, ok := Qualifier{Name: []byte("q")}.MostRecent()
		require.False(t, ok)
	})
}

func TestBuilder_Build(t *testing.T) {
	r := NewBuilder([]byte("row-1")).
		PutString("cf2", "b", 10, "x").
		PutString("cf1", "q2", 50, "v3").
		PutString("cf1", "q1", 100, "v1").
		PutString("cf1", "q1", 200, "v2").
		Build()

	require.Equal(t, []byte("row-1"), r.Key)
	require.Len(t, r.Families, 2)
	require.Equal(t, "cf1", string(r.Families[0].Name))
	require.Equal(t, "cf2", string(r.Families[1].Name))

	cf1 := r.Families[0]
	require.Equal(t, "q1", string(cf1.Qualifiers[0].Name))
	require.Equal(t, "q2", string(cf1.Qualifiers[1].Name))
	require.Equal(t, []Cell{
		{Timestamp: 200, Value: []byte("v2")},
		{Timestamp: 100, Value: []byte("v1")},
	}, cf1.Qualifiers[0].Versions)

	require.Equal(t, 3, r.CellCount())
}

func TestBuilder_SameTimestampReplaces(t *testing.T) {
	r := NewBuilder([]byte("k")).
		PutString("cf", "q", 7, "old").
		PutString("cf", "q", 7, "new").
		Build()

	require.Len(t, r.Families[0].Qualifiers[0].Versions, 1)
	require.Equal(t, []byte("new"), r.Families[0].Qualifiers[0].Versions[0].Value)
}

func TestBuilder_ByteOrder(t *testing.T) {
	r := NewBuilder([]byte{0x01}).
		Put([]byte{0xff}, []byte{0x02}, 1, nil).
		Put([]byte{0x00, 0x01}, []byte{0x10}, 1, nil).
		Put([]byte{0x00}, []byte{0x01, 0x00}, 1, nil).
		Put([]byte{0x00}, []byte{0x01}, 1, nil).
		Build()

	require.Equal(t, []byte{0x00}, r.Families[0].Name)
	require.Equal(t, []byte{0x00, 0x01}, r.Families[1].Name)
	require.Equal(t, []byte{0xff}, r.Families[2].Name)
	require.Equal(t, []byte{0x01}, r.Families[0].Qualifiers[0].Name)
	require.Equal(t, []byte{0x01, 0x00}, r.Families[0].Qualifiers[1].Name)
}

func TestBuilder_CopiesInput(t *testing.T) {
	fam := []byte("cf")
	val := []byte("value")
	b := NewBuilder([]byte("k"))
	b.Put(fam, []byte("q"), 1, val)
	fam[0] = 'x'
	val[0] = 'X'

	r := b.Build()
	require.Equal(t, "cf", string(r.Families[0].Name))
	require.Equal(t, "value", string(r.Families[0].Qualifiers[0].Versions[0].Value))
}

func TestRow_Family(t *testing.T) {
	r := NewBuilder([]byte("k")).
		PutString("cf1", "q", 1, "a").
		PutString("cf2", "q", 1, "b").
		Build()

	f, ok := r.Family([]byte("cf2"))
	require.True(t, ok)
	require.Equal(t, "cf2", string(f.Name))

	_, ok = r.Family([]byte("cf3"))
	require.False(t, ok)
}

func TestRow_FamilyWithoutIndex(t *testing.T) {
	r := &Row{
		Key: []byte("k"),
		Families: []Family{
			{Name: []byte("a")},
			{Name: []byte("b")},
		},
	}

	f, ok := r.Family([]byte("b"))
	require.True(t, ok)
	require.Equal(t, "b", string(f.Name))
}

func TestNew(t *testing.T) {
	r := New([]byte("k"), []Family{{
		Name: []byte("cf"),
		Qualifiers: []Qualifier{
			{Name: []byte("q"), Versions: []Cell{{Timestamp: 1, Value: []byte("v")}}},
		},
	}})

	f, ok := r.Family([]byte("cf"))
	require.True(t, ok)
	require.Len(t, f.Qualifiers, 1)
	require.Equal(t, 1, r.CellCount())
}

func TestRow_FamilyOnLiteral(t *testing.T) {
	r := &Row{
		Key:      []byte("k"),
		Families: []Family{{Name: []byte("a")}, {Name: []byte("b")}},
	}

	f, ok := r.Family([]byte("b"))
	require.True(t, ok)
	require.Equal(t, []byte("b"), f.Name)

	_, ok = r.Family([]byte("c"))
	require.False(t, ok)
}
