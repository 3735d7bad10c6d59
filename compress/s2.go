package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Codec handles S2 blocks, which also decode Snappy-compressed cells.
type S2Codec struct{}

// Compress encodes data as one S2 block.
func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes one S2 or Snappy block after checking its declared
// length against MaxDecodedCellSize.
func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptCellPayload, err)
	}
	if err := checkDecodedSize(n); err != nil {
		return nil, err
	}

	out, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptCellPayload, err)
	}

	return out, nil
}
