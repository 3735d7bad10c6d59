package codec

import (
	"encoding/binary"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/widecol/compress"
	"github.com/arloliu/widecol/endian"
	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/format"
	"github.com/arloliu/widecol/schema"
)

func desc(typ format.FieldType) schema.FieldDescriptor {
	return schema.FieldDescriptor{Type: typ}
}

func be32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }
func be64(v uint64) []byte { return binary.BigEndian.AppendUint64(nil, v) }

func TestDecode(t *testing.T) {
	millis := int64(1_700_000_000_123)

	tests := []struct {
		name string
		typ  format.FieldType
		raw  []byte
		want any
	}{
		{"string", format.TypeString, []byte("héllo"), "héllo"},
		{"integer positive", format.TypeInteger, be32(42), int64(42)},
		{"integer negative", format.TypeInteger, be32(uint32(0xFFFFFFFE)), int64(-2)},
		{"long", format.TypeLong, be64(uint64(1) << 40), int64(1) << 40},
		{"float", format.TypeFloat, be32(math.Float32bits(1.5)), float64(1.5)},
		{"double", format.TypeDouble, be64(math.Float64bits(-3.25)), float64(-3.25)},
		{"date", format.TypeDate, be64(uint64(millis)), time.UnixMilli(millis).UTC()},
		{"binary", format.TypeBinary, []byte{0x00, 0xff}, []byte{0x00, 0xff}},
		{"boolean text Y", format.TypeBoolean, []byte("Y"), true},
		{"boolean text false", format.TypeBoolean, []byte("False"), false},
		{"boolean text yes", format.TypeBoolean, []byte(" yes "), true},
		{"boolean 1 byte", format.TypeBoolean, []byte{0x01}, true},
		{"boolean 4 bytes zero", format.TypeBoolean, be32(0), false},
		{"boolean 8 bytes", format.TypeBoolean, be64(7), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw, desc(tt.typ))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_EmptyIsZeroValue(t *testing.T) {
	tests := []struct {
		typ  format.FieldType
		want any
	}{
		{format.TypeString, ""},
		{format.TypeInteger, int64(0)},
		{format.TypeLong, int64(0)},
		{format.TypeFloat, float64(0)},
		{format.TypeDouble, float64(0)},
		{format.TypeBoolean, false},
		{format.TypeDate, time.Time{}},
		{format.TypeBinary, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, err := Decode([]byte{}, desc(tt.typ))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			got, err = Decode(nil, desc(tt.typ))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("BigNumber", func(t *testing.T) {
		got, err := Decode(nil, desc(format.TypeBigNumber))
		require.NoError(t, err)
		f, ok := got.(*big.Float)
		require.True(t, ok)
		require.Equal(t, 0, f.Sign())
	})
}

func TestDecode_WidthMismatch(t *testing.T) {
	tests := []struct {
		typ format.FieldType
		raw []byte
	}{
		{format.TypeInteger, []byte{0x00, 0x00, 0x01}},
		{format.TypeInteger, be64(1)},
		{format.TypeLong, be32(1)},
		{format.TypeFloat, []byte{0x01}},
		{format.TypeDouble, be32(1)},
		{format.TypeDate, []byte{0x01, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			_, err := Decode(tt.raw, desc(tt.typ))
			require.ErrorIs(t, err, errs.ErrInvalidFieldWidth)

			var de *errs.DecodeError
			require.ErrorAs(t, err, &de)
			require.Equal(t, len(tt.raw), de.Length)
			require.Equal(t, tt.typ.String(), de.Type)
		})
	}
}

func TestDecode_Boolean_Invalid(t *testing.T) {
	_, err := Decode([]byte("maybe"), desc(format.TypeBoolean))
	require.ErrorIs(t, err, errs.ErrInvalidBoolean)
}

func TestDecode_BigNumber(t *testing.T) {
	got, err := Decode([]byte("12345678901234567890.125"), desc(format.TypeBigNumber))
	require.NoError(t, err)

	f, ok := got.(*big.Float)
	require.True(t, ok)
	require.Equal(t, "12345678901234567890.125", f.Text('f', 3))

	_, err = Decode([]byte("12,5"), desc(format.TypeBigNumber))
	require.ErrorIs(t, err, errs.ErrInvalidNumber)
}

func TestDecode_UnsupportedType(t *testing.T) {
	_, err := Decode([]byte("x"), schema.FieldDescriptor{})
	require.ErrorIs(t, err, errs.ErrUnsupportedFieldType)

	_, err = Decode([]byte("x"), desc(format.FieldType(0x3f)))
	require.ErrorIs(t, err, errs.ErrUnsupportedFieldType)
}

func TestDecode_BinaryIsCopied(t *testing.T) {
	raw := []byte{1, 2, 3}
	got, err := Decode(raw, desc(format.TypeBinary))
	require.NoError(t, err)

	raw[0] = 9
	require.Equal(t, []byte{1, 2, 3}, got)
}

func TestDecode_Deterministic(t *testing.T) {
	raw := []byte("cf1")
	first, err := Decode(raw, desc(format.TypeString))
	require.NoError(t, err)
	second, err := Decode(raw, desc(format.TypeString))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDecode_Compressed(t *testing.T) {
	doc := []byte(`{"status":"active","attempts":3,"status_history":["new","active"]}`)

	for _, typ := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			c, err := compress.GetCodec(typ)
			require.NoError(t, err)
			payload, err := c.Compress(doc)
			require.NoError(t, err)

			got, err := Decode(payload, schema.FieldDescriptor{Type: format.TypeString, Compression: typ})
			require.NoError(t, err)
			require.Equal(t, string(doc), got)
		})
	}

	t.Run("fixed width checked after decompression", func(t *testing.T) {
		payload, err := compress.S2Codec{}.Compress(be64(99))
		require.NoError(t, err)

		got, err := Decode(payload, schema.FieldDescriptor{Type: format.TypeLong, Compression: format.CompressionS2})
		require.NoError(t, err)
		require.Equal(t, int64(99), got)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		_, err := Decode([]byte("garbage"), schema.FieldDescriptor{Type: format.TypeString, Compression: format.CompressionZstd})
		var de *errs.DecodeError
		require.ErrorAs(t, err, &de)
		require.Equal(t, 7, de.Length)
	})
}

func TestCodec_LittleEndian(t *testing.T) {
	c, err := New(WithByteOrder(endian.GetLittleEndianEngine()))
	require.NoError(t, err)

	got, err := c.Decode(binary.LittleEndian.AppendUint32(nil, 513), desc(format.TypeInteger))
	require.NoError(t, err)
	require.Equal(t, int64(513), got)

	// nil engine keeps the default
	c, err = New(WithByteOrder(nil))
	require.NoError(t, err)
	got, err = c.Decode(be32(513), desc(format.TypeInteger))
	require.NoError(t, err)
	require.Equal(t, int64(513), got)

	var zero Codec
	got, err = zero.Decode(be32(7), desc(format.TypeInteger))
	require.NoError(t, err)
	require.Equal(t, int64(7), got)
}
