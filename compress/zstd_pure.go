//go:build !gozstd || !cgo

package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCodec handles Zstandard frames. This build uses klauspost/compress;
// build with the gozstd tag and cgo for the libzstd binding.
type ZstdCodec struct{}

// Decoders refuse frames larger than MaxDecodedCellSize while decoding, so a
// hostile frame header cannot force a large allocation.
var zstdDecoders = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(MaxDecodedCellSize),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: zstd decoder: %v", err))
		}

		return d
	},
}

var zstdEncoders = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(true),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: zstd encoder: %v", err))
		}

		return e
	},
}

// Compress encodes data as one Zstd frame.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	e, _ := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(e)

	return e.EncodeAll(data, nil), nil
}

// Decompress decodes every frame of data.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	d, _ := zstdDecoders.Get().(*zstd.Decoder)
	defer zstdDecoders.Put(d)

	out, err := d.DecodeAll(data, nil)
	if err != nil {
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrCellTooLarge, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrCorruptCellPayload, err)
	}

	return out, nil
}
