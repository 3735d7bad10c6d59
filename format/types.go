// Package format defines the type tags shared by the widecol packages.
//
// FieldType tags a stored cell (qualifier, value or family bytes), KeyType tags
// the row key encoding of a mapping, and CompressionType tags a cell payload
// that was compressed by the writer before it reached the store.
package format

import "strings"

type (
	FieldType       uint8
	KeyType         uint8
	CompressionType uint8
)

const (
	TypeUnknown    FieldType = 0x0 // TypeUnknown is the zero value and never decodes.
	TypeString     FieldType = 0x1 // TypeString represents UTF-8 text.
	TypeInteger    FieldType = 0x2 // TypeInteger represents a 4-byte signed integer.
	TypeLong       FieldType = 0x3 // TypeLong represents an 8-byte signed integer.
	TypeFloat      FieldType = 0x4 // TypeFloat represents a 4-byte IEEE-754 float.
	TypeDouble     FieldType = 0x5 // TypeDouble represents an 8-byte IEEE-754 float.
	TypeBoolean    FieldType = 0x6 // TypeBoolean represents a textual or numeric flag.
	TypeDate       FieldType = 0x7 // TypeDate represents 8-byte epoch milliseconds.
	TypeBigNumber  FieldType = 0x8 // TypeBigNumber represents a decimal stored as text.
	TypeBinary     FieldType = 0x9 // TypeBinary represents opaque bytes.
	maxFieldTypeID           = TypeBinary

	KeyUnknown         KeyType = 0x0 // KeyUnknown is the zero value and never decodes.
	KeyString          KeyType = 0x1 // KeyString represents a UTF-8 key.
	KeyInteger         KeyType = 0x2 // KeyInteger represents a 4-byte sign-flipped integer key.
	KeyUnsignedInteger KeyType = 0x3 // KeyUnsignedInteger represents a 4-byte integer key.
	KeyLong            KeyType = 0x4 // KeyLong represents an 8-byte sign-flipped integer key.
	KeyUnsignedLong    KeyType = 0x5 // KeyUnsignedLong represents an 8-byte integer key.
	KeyDate            KeyType = 0x6 // KeyDate represents 8-byte sign-flipped epoch milliseconds.
	KeyUnsignedDate    KeyType = 0x7 // KeyUnsignedDate represents 8-byte epoch milliseconds.
	KeyBinary          KeyType = 0x8 // KeyBinary represents an opaque key.
	maxKeyTypeID               = KeyBinary

	CompressionDefault CompressionType = 0x0 // CompressionDefault means the payload is stored as is.
	CompressionNone    CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var fieldTypeNames = [...]string{
	TypeUnknown:   "Unknown",
	TypeString:    "String",
	TypeInteger:   "Integer",
	TypeLong:      "Long",
	TypeFloat:     "Float",
	TypeDouble:    "Double",
	TypeBoolean:   "Boolean",
	TypeDate:      "Date",
	TypeBigNumber: "BigNumber",
	TypeBinary:    "Binary",
}

var keyTypeNames = [...]string{
	KeyUnknown:         "Unknown",
	KeyString:          "String",
	KeyInteger:         "Integer",
	KeyUnsignedInteger: "UnsignedInteger",
	KeyLong:            "Long",
	KeyUnsignedLong:    "UnsignedLong",
	KeyDate:            "Date",
	KeyUnsignedDate:    "UnsignedDate",
	KeyBinary:          "Binary",
}

func (t FieldType) String() string {
	if t > maxFieldTypeID {
		return "Unknown"
	}

	return fieldTypeNames[t]
}

// IsValid reports whether t is a decodable field type.
func (t FieldType) IsValid() bool {
	return t != TypeUnknown && t <= maxFieldTypeID
}

// FixedWidth returns the stored byte width of fixed-width types, or 0 for
// variable-width types.
func (t FieldType) FixedWidth() int {
	switch t { //nolint: exhaustive
	case TypeInteger, TypeFloat:
		return 4
	case TypeLong, TypeDouble, TypeDate:
		return 8
	default:
		return 0
	}
}

// ParseFieldType parses a field type name case-insensitively.
func ParseFieldType(name string) (FieldType, bool) {
	for i, n := range fieldTypeNames {
		if i != int(TypeUnknown) && strings.EqualFold(n, name) {
			return FieldType(i), true //nolint:gosec
		}
	}

	return TypeUnknown, false
}

func (k KeyType) String() string {
	if k > maxKeyTypeID {
		return "Unknown"
	}

	return keyTypeNames[k]
}

// IsValid reports whether k is a decodable key type.
func (k KeyType) IsValid() bool {
	return k != KeyUnknown && k <= maxKeyTypeID
}

// IsSigned reports whether keys of this type are stored with the sign bit flipped.
func (k KeyType) IsSigned() bool {
	return k == KeyInteger || k == KeyLong || k == KeyDate
}

// FixedWidth returns the stored byte width of fixed-width key types, or 0.
func (k KeyType) FixedWidth() int {
	switch k { //nolint: exhaustive
	case KeyInteger, KeyUnsignedInteger:
		return 4
	case KeyLong, KeyUnsignedLong, KeyDate, KeyUnsignedDate:
		return 8
	default:
		return 0
	}
}

// ParseKeyType parses a key type name case-insensitively.
func ParseKeyType(name string) (KeyType, bool) {
	for i, n := range keyTypeNames {
		if i != int(KeyUnknown) && strings.EqualFold(n, name) {
			return KeyType(i), true //nolint:gosec
		}
	}

	return KeyUnknown, false
}

func (c CompressionType) String() string {
	switch c {
	case CompressionDefault, CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a compression name case-insensitively.
// The empty string maps to CompressionDefault.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "":
		return CompressionDefault, true
	case "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return CompressionDefault, false
	}
}
