// Package widecol flattens wide-column store rows into flat tuples for
// tabular pipelines.
//
// A wide-column row is a row key with families of qualifiers, each qualifier
// holding timestamped versions of a value. In tuple mode every (family,
// qualifier) pair of a row becomes one output tuple carrying the key, the
// family, the qualifier, the most recent value and its timestamp, placed at
// the positions an output schema gives the Key, Family, Column, Value and
// Timestamp roles.
//
// # Core Features
//
//   - Session-scoped decoding with the role layout resolved once
//   - All-families or restricted, user-ordered family selection
//   - Typed decoding of keys, qualifiers and values (String, Integer, Long,
//     Float, Double, Boolean, Date, BigNumber, Binary)
//   - Optional cell payload decompression (Zstd, S2, LZ4)
//   - YAML mapping catalogs and Hadoop-style client configuration resolution
//
// # Basic Usage
//
// Decoding rows with a catalog entry:
//
//	import "github.com/arloliu/widecol"
//
//	cat, _ := widecol.LoadCatalog("catalog.yaml")
//	session, _ := widecol.Open(cat, "events", "tuples")
//
//	r := widecol.NewRow([]byte("row1")).
//	    PutString("cf1", "q1", 100, "v1").
//	    PutString("cf1", "q1", 200, "v2").
//	    Build()
//
//	tuples, _ := session.Decode(r)
//	for _, t := range tuples {
//	    fmt.Println(t...) // row1 cf1 q1 v2 200
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the tuple,
// catalog, row and connection packages. For fine-grained control, use those
// packages directly.
package widecol

import (
	"context"

	"github.com/arloliu/widecol/catalog"
	"github.com/arloliu/widecol/connection"
	"github.com/arloliu/widecol/row"
	"github.com/arloliu/widecol/schema"
	"github.com/arloliu/widecol/tuple"
)

// NewDecoder creates a tuple decoding session for s.
//
// Available options:
//   - tuple.WithFamilySeparator(sep)
//   - tuple.WithMissingFamilyPolicy(tuple.MissingFamilySkip|MissingFamilyError)
//   - tuple.WithLogger(logger)
//   - tuple.WithCodec(codec)
//   - tuple.WithFreshTuples(true|false)
//   - tuple.WithInitialCapacity(n)
//
// Returns a *errs.ConfigurationError if s is nil or an option is invalid.
func NewDecoder(s *schema.OutputSchema, opts ...tuple.DecoderOption) (*tuple.Decoder, error) {
	return tuple.NewDecoder(s, opts...)
}

// NewStrictDecoder creates a decoding session that fails a row when a
// filtered family is absent from it, instead of skipping the family.
//
// Parameters:
//   - s: Output schema
//   - opts: Further decoder options, applied after the strict policy
//
// Returns:
//   - *tuple.Decoder: The decoding session
//   - error: An error if the configuration is invalid
func NewStrictDecoder(s *schema.OutputSchema, opts ...tuple.DecoderOption) (*tuple.Decoder, error) {
	opts = append([]tuple.DecoderOption{tuple.WithMissingFamilyPolicy(tuple.MissingFamilyError)}, opts...)
	return tuple.NewDecoder(s, opts...)
}

// NewRow starts building a source row with the given key.
func NewRow(key []byte) *row.Builder {
	return row.NewBuilder(key)
}

// LoadCatalog reads a YAML mapping catalog from path.
func LoadCatalog(path string) (*catalog.File, error) {
	return catalog.LoadFile(path)
}

// ResolveConnection resolves store client properties; see connection.Resolve.
func ResolveConnection(ctx context.Context, cfg connection.Config, opts ...connection.Option) (*connection.Properties, error) {
	return connection.Resolve(ctx, cfg, opts...)
}

// Session binds a decoding session to one catalog entry, so rows can be
// decoded without passing the mapping and descriptors on every call.
//
// Like tuple.Decoder, a Session is NOT thread-safe.
type Session struct {
	entry   *catalog.Entry
	schema  *schema.OutputSchema
	descs   schema.RoleDescriptors
	decoder *tuple.Decoder
}

// Open looks up (table, mapping) in c and creates a Session for it.
//
// Parameters:
//   - c: Mapping catalog
//   - table: Source table name
//   - mapping: Mapping name within the table
//   - opts: Decoder options
//
// Returns:
//   - *Session: Session ready to decode rows
//   - error: errs.ErrMappingNotFound, or a *errs.ConfigurationError
func Open(c catalog.Catalog, table, mapping string, opts ...tuple.DecoderOption) (*Session, error) {
	entry, err := c.Lookup(table, mapping)
	if err != nil {
		return nil, err
	}

	return OpenEntry(entry, opts...)
}

// OpenEntry creates a Session for an already resolved catalog entry.
func OpenEntry(entry *catalog.Entry, opts ...tuple.DecoderOption) (*Session, error) {
	s, err := entry.OutputSchema()
	if err != nil {
		return nil, err
	}

	dec, err := tuple.NewDecoder(s, opts...)
	if err != nil {
		return nil, err
	}

	return &Session{
		entry:   entry,
		schema:  s,
		descs:   entry.RoleDescriptors(),
		decoder: dec,
	}, nil
}

// Decode flattens r; see tuple.Decoder.Decode for ownership of the result.
func (s *Session) Decode(r *row.Row) ([]tuple.Tuple, error) {
	return s.decoder.Decode(r, s.entry.Mapping, s.descs)
}

// Schema returns the output schema every tuple follows.
func (s *Session) Schema() *schema.OutputSchema {
	return s.schema
}

// Mapping returns the mapping the session decodes with.
func (s *Session) Mapping() schema.Mapping {
	return s.entry.Mapping
}

// Decoder returns the underlying decoding session.
func (s *Session) Decoder() *tuple.Decoder {
	return s.decoder
}
