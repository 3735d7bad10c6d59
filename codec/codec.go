// Package codec decodes raw cell, qualifier, family and row key bytes into
// typed values according to a field descriptor.
//
// Decoded Go types per format.FieldType:
//
//	String     string
//	Integer    int64   (4 stored bytes)
//	Long       int64   (8 stored bytes)
//	Float      float64 (4 stored bytes)
//	Double     float64 (8 stored bytes)
//	Boolean    bool    (text such as "Y"/"false", or a 1/2/4/8-byte number)
//	Date       time.Time, UTC (8-byte epoch milliseconds)
//	BigNumber  *big.Float (decimal text)
//	Binary     []byte  (copy)
//
// An empty byte slice decodes to the zero value of the type. A non-empty
// slice whose length does not match a fixed-width type fails with a
// *errs.DecodeError wrapping errs.ErrInvalidFieldWidth.
//
// Codec values are immutable and safe for concurrent use.
package codec

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/arloliu/widecol/compress"
	"github.com/arloliu/widecol/endian"
	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/format"
	"github.com/arloliu/widecol/internal/options"
	"github.com/arloliu/widecol/schema"
)

// bigNumberPrecision is the mantissa precision of decoded BigNumber values.
const bigNumberPrecision = 128

// Codec decodes raw bytes with a fixed byte order.
type Codec struct {
	engine endian.EndianEngine
}

// Option configures a Codec.
type Option = options.Option[*Codec]

// WithByteOrder sets the byte order of fixed-width numbers.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.NoError(func(c *Codec) {
		if engine != nil {
			c.engine = engine
		}
	})
}

// New creates a Codec. Without options it decodes numbers in the store's
// big-endian order.
func New(opts ...Option) (Codec, error) {
	c := &Codec{engine: endian.GetStoreEngine()}
	if err := options.Apply(c, opts...); err != nil {
		return Codec{}, err
	}

	return *c, nil
}

var defaultCodec = Codec{engine: endian.GetStoreEngine()}

// Default returns the big-endian codec.
func Default() Codec {
	return defaultCodec
}

// Decode decodes raw with the default codec.
func Decode(raw []byte, desc schema.FieldDescriptor) (any, error) {
	return defaultCodec.Decode(raw, desc)
}

// DecodeKey decodes a row key with the default codec.
func DecodeKey(raw []byte, m schema.Mapping) (any, error) {
	return defaultCodec.DecodeKey(raw, m)
}

func (c Codec) byteOrder() endian.EndianEngine {
	if c.engine == nil {
		return endian.GetStoreEngine()
	}

	return c.engine
}

// Decode decodes raw according to desc.
//
// The payload is decompressed first when desc declares a compression. raw is
// never modified or retained.
//
// Parameters:
//   - raw: Stored bytes (may be empty)
//   - desc: Descriptor naming the target type
//
// Returns:
//   - any: Decoded value, see the package documentation for the Go types
//   - error: *errs.DecodeError when raw does not fit desc.Type
func (c Codec) Decode(raw []byte, desc schema.FieldDescriptor) (any, error) {
	if !desc.Type.IsValid() {
		return nil, errs.NewFieldDecodeError(desc.Type, len(raw), errs.ErrUnsupportedFieldType)
	}

	data, err := compress.Decompress(desc.Compression, raw)
	if err != nil {
		return nil, errs.NewFieldDecodeError(desc.Type, len(raw), err)
	}

	if width := desc.Type.FixedWidth(); width > 0 && len(data) != 0 && len(data) != width {
		return nil, errs.NewFieldDecodeError(desc.Type, len(data), errs.ErrInvalidFieldWidth)
	}

	engine := c.byteOrder()

	switch desc.Type { //nolint: exhaustive
	case format.TypeString:
		return string(data), nil
	case format.TypeInteger:
		if len(data) == 0 {
			return int64(0), nil
		}

		return int64(int32(engine.Uint32(data))), nil //nolint:gosec
	case format.TypeLong:
		if len(data) == 0 {
			return int64(0), nil
		}

		return int64(engine.Uint64(data)), nil //nolint:gosec
	case format.TypeFloat:
		if len(data) == 0 {
			return float64(0), nil
		}

		return float64(math.Float32frombits(engine.Uint32(data))), nil
	case format.TypeDouble:
		if len(data) == 0 {
			return float64(0), nil
		}

		return math.Float64frombits(engine.Uint64(data)), nil
	case format.TypeBoolean:
		v, err := c.decodeBoolean(data)
		if err != nil {
			return nil, errs.NewFieldDecodeError(desc.Type, len(data), err)
		}

		return v, nil
	case format.TypeDate:
		if len(data) == 0 {
			return time.Time{}, nil
		}

		return time.UnixMilli(int64(engine.Uint64(data))).UTC(), nil //nolint:gosec
	case format.TypeBigNumber:
		v, err := decodeBigNumber(data)
		if err != nil {
			return nil, errs.NewFieldDecodeError(desc.Type, len(data), err)
		}

		return v, nil
	case format.TypeBinary:
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	default:
		return nil, errs.NewFieldDecodeError(desc.Type, len(data), errs.ErrUnsupportedFieldType)
	}
}

// decodeBoolean accepts the textual spellings first and falls back to a
// numeric interpretation where any non-zero value is true.
func (c Codec) decodeBoolean(data []byte) (bool, error) {
	if len(data) == 0 {
		return false, nil
	}

	switch strings.ToUpper(strings.TrimSpace(string(data))) {
	case "Y", "YES", "T", "TRUE", "1":
		return true, nil
	case "N", "NO", "F", "FALSE", "0":
		return false, nil
	}

	engine := c.byteOrder()
	switch len(data) {
	case 1:
		return data[0] != 0, nil
	case 2:
		return engine.Uint16(data) != 0, nil
	case 4:
		return engine.Uint32(data) != 0, nil
	case 8:
		return engine.Uint64(data) != 0, nil
	default:
		return false, errs.ErrInvalidBoolean
	}
}

func decodeBigNumber(data []byte) (*big.Float, error) {
	f := new(big.Float).SetPrec(bigNumberPrecision)
	text := strings.TrimSpace(string(data))
	if text == "" {
		return f, nil
	}

	if _, ok := f.SetString(text); !ok {
		return nil, errs.ErrInvalidNumber
	}

	return f, nil
}

// DecodeKey decodes a row key according to the mapping's key type.
//
// Signed key types are stored with the sign bit of the first byte flipped so
// that keys sort numerically; the flip is undone on a pooled scratch copy and
// raw is left untouched.
//
// Returns:
//   - any: string, int64, time.Time or []byte depending on m.KeyType
//   - error: *errs.DecodeError with Role "Key" and Field m.KeyName
func (c Codec) DecodeKey(raw []byte, m schema.Mapping) (any, error) {
	v, err := c.decodeKey(raw, m.KeyType)
	if err != nil {
		var de *errs.DecodeError
		if errors.As(err, &de) {
			de.Role = schema.RoleKey.String()
			de.Field = m.KeyName
		}

		return nil, err
	}

	return v, nil
}

func (c Codec) decodeKey(raw []byte, typ format.KeyType) (any, error) {
	if !typ.IsValid() {
		return nil, errs.NewKeyDecodeError(typ, len(raw), errs.ErrUnsupportedKeyType)
	}

	if width := typ.FixedWidth(); width > 0 && len(raw) != 0 && len(raw) != width {
		return nil, errs.NewKeyDecodeError(typ, len(raw), errs.ErrInvalidFieldWidth)
	}

	switch typ { //nolint: exhaustive
	case format.KeyString:
		return string(raw), nil
	case format.KeyBinary:
		out := make([]byte, len(raw))
		copy(out, raw)

		return out, nil
	}

	if len(raw) == 0 {
		if typ == format.KeyDate || typ == format.KeyUnsignedDate {
			return time.Time{}, nil
		}

		return int64(0), nil
	}

	// signed keys are stored with the sign bit flipped so they sort as bytes
	var flipped [8]byte
	data := raw
	if typ.IsSigned() {
		data = flipped[:copy(flipped[:], raw)]
		data[0] ^= 0x80
	}

	engine := c.byteOrder()

	switch typ { //nolint: exhaustive
	case format.KeyInteger:
		return int64(int32(engine.Uint32(data))), nil //nolint:gosec
	case format.KeyUnsignedInteger:
		return int64(engine.Uint32(data)), nil
	case format.KeyLong, format.KeyUnsignedLong:
		return int64(engine.Uint64(data)), nil //nolint:gosec
	default: // KeyDate, KeyUnsignedDate
		return time.UnixMilli(int64(engine.Uint64(data))).UTC(), nil //nolint:gosec
	}
}
