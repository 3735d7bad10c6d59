//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// ZstdCodec handles Zstandard frames through the libzstd cgo binding.
type ZstdCodec struct{}

const zstdLevel = 3

// Compress encodes data as one Zstd frame.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes data. libzstd has no decoded size cap, so the limit is
// checked on the result.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptCellPayload, err)
	}
	if err := checkDecodedSize(len(out)); err != nil {
		return nil, err
	}

	return out, nil
}
