// Package catalog loads table mappings and their field descriptors from YAML.
//
// A catalog document lists one entry per (table, mapping) pair:
//
//	mappings:
//	  - table: events
//	    name: tuples
//	    key: {name: rowkey, type: long}
//	    tuple_families: "cf1,cf2"
//	    output: [rowkey, Family, Column, Value, Timestamp]
//	    fields:
//	      - {alias: Family, type: string}
//	      - {alias: Column, type: string}
//	      - {alias: Value, type: long, compression: zstd}
//
// Type and compression names are case-insensitive; the key type defaults to
// string. When output is omitted the
// schema is the key name followed by the four role fields.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/format"
	"github.com/arloliu/widecol/schema"
)

// Catalog resolves a (table, mapping) pair to its entry.
type Catalog interface {
	Lookup(table, mapping string) (*Entry, error)
}

// Entry is one resolved mapping together with its output fields and
// alias-keyed descriptors.
type Entry struct {
	Mapping     schema.Mapping
	Fields      []schema.Field
	Descriptors map[string]schema.FieldDescriptor
}

// OutputSchema builds the output schema of the entry.
func (e *Entry) OutputSchema() (*schema.OutputSchema, error) {
	return schema.NewOutputSchema(e.Fields...)
}

// RoleDescriptors picks the Family, Column and Value descriptors by alias.
func (e *Entry) RoleDescriptors() schema.RoleDescriptors {
	return schema.RoleDescriptorsFromAliases(e.Descriptors)
}

type document struct {
	Mappings []mappingDoc `yaml:"mappings"`
}

type mappingDoc struct {
	Table         string     `yaml:"table"`
	Name          string     `yaml:"name"`
	Key           keyDoc     `yaml:"key"`
	TupleFamilies string     `yaml:"tuple_families"`
	Output        []string   `yaml:"output"`
	Fields        []fieldDoc `yaml:"fields"`
}

type keyDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type fieldDoc struct {
	Alias       string `yaml:"alias"`
	Family      string `yaml:"family"`
	Qualifier   string `yaml:"qualifier"`
	Type        string `yaml:"type"`
	Compression string `yaml:"compression"`
}

type entryKey struct {
	table   string
	mapping string
}

// File is an in-memory catalog loaded from a YAML document. It is immutable
// and safe for concurrent use.
type File struct {
	entries map[entryKey]*Entry
}

var _ Catalog = (*File)(nil)

// Load parses a catalog document from r. Unknown keys are rejected.
//
// Returns a *errs.ConfigurationError when the document is malformed, names an
// unknown type or compression, or defines a (table, mapping) pair twice.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.NewConfigurationError("parse catalog", err)
	}

	f := &File{entries: make(map[entryKey]*Entry, len(doc.Mappings))}
	for i := range doc.Mappings {
		md := &doc.Mappings[i]

		entry, err := md.entry()
		if err != nil {
			return nil, err
		}

		k := entryKey{table: md.Table, mapping: md.Name}
		if _, dup := f.entries[k]; dup {
			return nil, errs.NewConfigurationError(
				fmt.Sprintf("catalog %s/%s", md.Table, md.Name),
				fmt.Errorf("%w: defined more than once", errs.ErrInvalidMapping))
		}
		f.entries[k] = entry
	}

	return f, nil
}

// LoadFile reads and parses the catalog document at path.
func LoadFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer fd.Close()

	return Load(fd)
}

// Lookup returns the entry for (table, mapping), or an error wrapping
// errs.ErrMappingNotFound.
func (f *File) Lookup(table, mapping string) (*Entry, error) {
	if e, ok := f.entries[entryKey{table: table, mapping: mapping}]; ok {
		return e, nil
	}

	return nil, fmt.Errorf("%w: %s/%s", errs.ErrMappingNotFound, table, mapping)
}

// Mappings lists the defined pairs as "table/mapping", sorted.
func (f *File) Mappings() []string {
	names := make([]string, 0, len(f.entries))
	for k := range f.entries {
		names = append(names, k.table+"/"+k.mapping)
	}
	sort.Strings(names)

	return names
}

func (md *mappingDoc) entry() (*Entry, error) {
	op := fmt.Sprintf("catalog %s/%s", md.Table, md.Name)
	if md.Table == "" || md.Name == "" {
		return nil, errs.NewConfigurationError(op, fmt.Errorf("%w: table and name are required", errs.ErrInvalidMapping))
	}

	keyType, ok := format.KeyString, true
	if md.Key.Type != "" {
		keyType, ok = format.ParseKeyType(md.Key.Type)
	}
	if !ok {
		return nil, errs.NewConfigurationError(op, fmt.Errorf("%w: %q", errs.ErrUnsupportedKeyType, md.Key.Type))
	}

	descs := make(map[string]schema.FieldDescriptor, len(md.Fields))
	for _, fd := range md.Fields {
		desc, err := fd.descriptor()
		if err != nil {
			return nil, errs.NewConfigurationError(op, err)
		}
		if _, dup := descs[desc.Alias]; dup {
			return nil, errs.NewConfigurationError(op, fmt.Errorf("%w: %q", errs.ErrDuplicateField, desc.Alias))
		}
		descs[desc.Alias] = desc
	}

	output := md.Output
	if len(output) == 0 {
		output = defaultOutput(md.Key.Name)
	}

	fields := make([]schema.Field, len(output))
	for i, name := range output {
		fields[i] = schema.Field{Name: name, Type: outputType(name, descs)}
	}

	entry := &Entry{
		Mapping: schema.Mapping{
			TableName:     md.Table,
			MappingName:   md.Name,
			KeyName:       md.Key.Name,
			KeyType:       keyType,
			TupleFamilies: md.TupleFamilies,
		},
		Fields:      fields,
		Descriptors: descs,
	}

	// surface schema errors at load time rather than at first decode
	if _, err := entry.OutputSchema(); err != nil {
		return nil, err
	}

	return entry, nil
}

func (fd fieldDoc) descriptor() (schema.FieldDescriptor, error) {
	if fd.Alias == "" {
		return schema.FieldDescriptor{}, errs.ErrEmptyFieldName
	}

	typ, ok := format.ParseFieldType(fd.Type)
	if !ok {
		return schema.FieldDescriptor{}, fmt.Errorf("%w: field %q has type %q", errs.ErrUnsupportedFieldType, fd.Alias, fd.Type)
	}

	comp, ok := format.ParseCompressionType(fd.Compression)
	if !ok {
		return schema.FieldDescriptor{}, fmt.Errorf("%w: field %q has compression %q", errs.ErrInvalidMapping, fd.Alias, fd.Compression)
	}

	return schema.FieldDescriptor{
		Alias:       fd.Alias,
		Family:      fd.Family,
		Qualifier:   fd.Qualifier,
		Type:        typ,
		Compression: comp,
	}, nil
}

func defaultOutput(keyName string) []string {
	names := make([]string, 0, 5)
	if keyName != "" {
		names = append(names, keyName)
	}

	return append(names, schema.FamilyField, schema.ColumnField, schema.ValueField, schema.TimestampField)
}

func outputType(name string, descs map[string]schema.FieldDescriptor) format.FieldType {
	if name == schema.TimestampField {
		return format.TypeLong
	}
	if d, ok := descs[name]; ok {
		return d.Type
	}

	return format.TypeUnknown
}
