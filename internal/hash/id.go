package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a raw identifier such as a family or qualifier.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// StringID computes the xxHash64 of s; StringID(s) == ID([]byte(s)).
func StringID(s string) uint64 {
	return xxhash.Sum64String(s)
}
