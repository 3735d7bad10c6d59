package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/widecol/format"
)

// MaxDecodedCellSize bounds the memory one decompressed cell may use. A
// payload claiming or producing more is rejected with ErrCellTooLarge.
const MaxDecodedCellSize = 128 * 1024 * 1024

var (
	ErrCellTooLarge       = errors.New("decompressed cell exceeds size limit")
	ErrUnsupportedCodec   = errors.New("unsupported compression type")
	ErrCorruptCellPayload = errors.New("corrupt compressed cell payload")
)

// Codec compresses and restores single cell payloads.
//
// The decode path only uses Decompress; Compress exists so writers, fixtures
// and tools produce payloads through the same implementation.
//
// All built-in codecs are safe for concurrent use.
type Codec interface {
	// Compress returns the compressed form of data. The input is not
	// modified; the passthrough codec returns it as is.
	Compress(data []byte) ([]byte, error)
	// Decompress restores a payload produced by Compress. Empty input yields
	// empty output.
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionDefault: PassthroughCodec{},
	format.CompressionNone:    PassthroughCodec{},
	format.CompressionZstd:    ZstdCodec{},
	format.CompressionS2:      S2Codec{},
	format.CompressionLZ4:     LZ4Codec{},
}

// GetCodec returns the shared codec for a descriptor's compression type.
//
// Parameters:
//   - compressionType: Compression declared on a field descriptor
//
// Returns:
//   - Codec: Shared, stateless codec
//   - error: ErrUnsupportedCodec for unknown types
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if c, ok := builtinCodecs[compressionType]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, compressionType)
}

// Decompress restores a cell stored with compressionType.
//
// Empty input and the None and Default types return data unchanged, sharing
// its memory. Errors name the compression type.
func Decompress(compressionType format.CompressionType, data []byte) ([]byte, error) {
	if len(data) == 0 || compressionType == format.CompressionDefault || compressionType == format.CompressionNone {
		return data, nil
	}

	c, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := c.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s cell: %w", compressionType, err)
	}

	return out, nil
}

// PassthroughCodec stores payloads uncompressed. It backs both
// format.CompressionDefault and format.CompressionNone.
type PassthroughCodec struct{}

// Compress returns data itself.
func (PassthroughCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself.
func (PassthroughCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func checkDecodedSize(n int) error {
	if n > MaxDecodedCellSize {
		return fmt.Errorf("%w: %d bytes", ErrCellTooLarge, n)
	}

	return nil
}
