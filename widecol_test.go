package widecol

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/widecol/catalog"
	"github.com/arloliu/widecol/connection"
	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/format"
	"github.com/arloliu/widecol/schema"
	"github.com/arloliu/widecol/tuple"
)

const testCatalog = `
mappings:
  - table: events
    name: tuples
    key: {name: rowkey, type: string}
    fields:
      - {alias: Family, type: string}
      - {alias: Column, type: string}
      - {alias: Value, type: string}
  - table: metrics
    name: compressed
    key: {name: host}
    tuple_families: "m"
    output: [host, Column, Value]
    fields:
      - {alias: Column, type: string}
      - {alias: Value, type: long, compression: zstd}
`

func loadTestCatalog(t *testing.T) *catalog.File {
	t.Helper()
	c, err := catalog.Load(strings.NewReader(testCatalog))
	require.NoError(t, err)

	return c
}

func TestOpen(t *testing.T) {
	session, err := Open(loadTestCatalog(t), "events", "tuples")
	require.NoError(t, err)
	require.Equal(t, []string{"rowkey", "Family", "Column", "Value", "Timestamp"}, session.Schema().Names())
	require.Equal(t, "events", session.Mapping().TableName)

	r := NewRow([]byte("row1")).
		PutString("cf1", "q1", 100, "v1").
		PutString("cf1", "q1", 200, "v2").
		PutString("cf1", "q2", 50, "v3").
		Build()

	tuples, err := session.Decode(r)
	require.NoError(t, err)
	require.Equal(t, []tuple.Tuple{
		{"row1", "cf1", "q1", "v2", int64(200)},
		{"row1", "cf1", "q2", "v3", int64(50)},
	}, tuples)
	require.Equal(t, 1, session.Decoder().Stats().Rows)
}

func TestOpen_CompressedValues(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	payload := enc.EncodeAll(binary.BigEndian.AppendUint64(nil, 1234), nil)

	session, err := Open(loadTestCatalog(t), "metrics", "compressed")
	require.NoError(t, err)

	r := NewRow([]byte("web-1")).
		Put([]byte("m"), []byte("cpu"), 10, payload).
		Put([]byte("ignored"), []byte("cpu"), 10, payload).
		Build()

	tuples, err := session.Decode(r)
	require.NoError(t, err)
	require.Equal(t, []tuple.Tuple{{"web-1", "cpu", int64(1234)}}, tuples)
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open(loadTestCatalog(t), "events", "nope")
	require.ErrorIs(t, err, errs.ErrMappingNotFound)
}

func TestNewStrictDecoder(t *testing.T) {
	s, err := schema.NewOutputSchemaFromNames("Column", "Value")
	require.NoError(t, err)

	dec, err := NewStrictDecoder(s)
	require.NoError(t, err)

	r := NewRow([]byte("k")).PutString("a", "q", 1, "v").Build()
	m := schema.Mapping{KeyName: "k", KeyType: format.KeyString, TupleFamilies: "a,b"}
	descs := loadTestCatalogDescs(t)

	_, err = dec.Decode(r, m, descs)
	require.ErrorIs(t, err, errs.ErrMissingFamily)

	lenient, err := NewDecoder(s)
	require.NoError(t, err)
	tuples, err := lenient.Decode(r, m, descs)
	require.NoError(t, err)
	require.Len(t, tuples, 1)
}

func loadTestCatalogDescs(t *testing.T) schema.RoleDescriptors {
	t.Helper()
	e, err := loadTestCatalog(t).Lookup("events", "tuples")
	require.NoError(t, err)

	return e.RoleDescriptors()
}

func TestLoadCatalogAndResolveConnection(t *testing.T) {
	dir := t.TempDir()
	catPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catPath, []byte(testCatalog), 0o600))

	c, err := LoadCatalog(catPath)
	require.NoError(t, err)
	require.Equal(t, []string{"events/tuples", "metrics/compressed"}, c.Mappings())

	props, err := ResolveConnection(context.Background(), connection.Config{Hosts: "zk1", Port: "2181"})
	require.NoError(t, err)
	require.Equal(t, 2181, props.GetInt(connection.ClientPortKey, 0))
}
