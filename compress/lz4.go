package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

const (
	lz4MinDecodeBuffer = 256
	lz4MaxRatio        = 255
)

var lz4Compressors = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec handles raw LZ4 blocks.
type LZ4Codec struct{}

// Compress encodes data as one LZ4 block.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(lc)

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decodes one LZ4 block.
//
// A block does not record its decoded size, so the buffer starts at four
// times the input and doubles while the block does not fit. LZ4 cannot expand
// a block by more than lz4MaxRatio, so a block that does not fit that bound
// is corrupt.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	limit := min(len(data)*lz4MaxRatio+lz4MinDecodeBuffer, MaxDecodedCellSize)
	size := min(max(len(data)*4, lz4MinDecodeBuffer), limit)
	for {
		buf := make([]byte, size)

		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || size == limit {
			if size == MaxDecodedCellSize {
				return nil, fmt.Errorf("%w: block does not fit in %d bytes", ErrCellTooLarge, size)
			}

			return nil, fmt.Errorf("%w: %w", ErrCorruptCellPayload, err)
		}

		size = min(size*2, limit)
	}
}
