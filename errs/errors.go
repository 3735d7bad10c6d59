// Package errs defines the errors returned by the widecol packages.
//
// Sentinel errors are matched with errors.Is. The typed errors carry the
// context needed to diagnose a failure:
//
//   - ConfigurationError: a session cannot be set up; fatal to the session.
//   - DecodeError: raw bytes do not fit their declared type; aborts one row.
//   - MissingFamilyError: a filtered family is absent from one row.
package errs

import (
	"errors"
	"fmt"

	"github.com/arloliu/widecol/format"
)

var (
	ErrNilSchema            = errors.New("output schema is nil")
	ErrNilRow               = errors.New("source row is nil")
	ErrEmptyFieldName       = errors.New("field name is empty")
	ErrDuplicateField       = errors.New("duplicate field name")
	ErrInvalidSeparator     = errors.New("family separator is empty")
	ErrMissingDescriptor    = errors.New("no field descriptor for requested role")
	ErrInvalidFieldWidth    = errors.New("byte length does not match fixed-width type")
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	ErrUnsupportedKeyType   = errors.New("unsupported key type")
	ErrInvalidBoolean       = errors.New("bytes are not a boolean")
	ErrInvalidNumber        = errors.New("bytes are not a decimal number")
	ErrMissingFamily        = errors.New("column family not present in row")
	ErrMappingNotFound      = errors.New("mapping not found")
	ErrInvalidMapping       = errors.New("invalid mapping definition")
	ErrUnsupportedScheme    = errors.New("unsupported resource URL scheme")
	ErrInvalidResource      = errors.New("invalid configuration resource")
)

// ConfigurationError reports a session setup failure.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}

	return fmt.Sprintf("configuration error (%s): %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError wraps err as a ConfigurationError for operation op.
func NewConfigurationError(op string, err error) *ConfigurationError {
	return &ConfigurationError{Op: op, Err: err}
}

// DecodeError reports raw bytes that cannot be interpreted under their
// declared type.
//
// The codec fills Type, Length and Err; the tuple decoder adds Role and Field.
type DecodeError struct {
	Role   string
	Field  string
	Type   string
	Length int
	Err    error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Role != "" && e.Field != "":
		return fmt.Sprintf("decode %s %q as %s (%d bytes): %v", e.Role, e.Field, e.Type, e.Length, e.Err)
	case e.Role != "":
		return fmt.Sprintf("decode %s as %s (%d bytes): %v", e.Role, e.Type, e.Length, e.Err)
	default:
		return fmt.Sprintf("decode %s (%d bytes): %v", e.Type, e.Length, e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewFieldDecodeError creates a DecodeError for a field type.
func NewFieldDecodeError(typ format.FieldType, length int, err error) *DecodeError {
	return &DecodeError{Type: typ.String(), Length: length, Err: err}
}

// NewKeyDecodeError creates a DecodeError for a row key type.
func NewKeyDecodeError(typ format.KeyType, length int, err error) *DecodeError {
	return &DecodeError{Type: "key " + typ.String(), Length: length, Err: err}
}

// MissingFamilyError reports a filtered family that is absent from a row.
// The row can be skipped; the session stays usable.
type MissingFamilyError struct {
	Family string
}

func (e *MissingFamilyError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMissingFamily, e.Family)
}

func (e *MissingFamilyError) Is(target error) bool {
	return target == ErrMissingFamily
}
