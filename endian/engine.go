// Package endian provides the byte order engines used to decode fixed-width
// cell and key bytes.
//
// Wide-column stores write numbers with their client byte utilities, which are
// big-endian. GetStoreEngine returns that order and is the codec default; the
// little-endian engine exists for tables written by clients that serialized
// numbers in host order.
//
//	engine := endian.GetStoreEngine()
//	v := int32(engine.Uint32(raw))
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"strings"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetStoreEngine returns the byte order the store's client utilities write
// numbers in.
func GetStoreEngine() EndianEngine {
	return binary.BigEndian
}

// ParseEngine returns the engine named by name ("big" or "little",
// case-insensitive). The empty string selects the store engine.
func ParseEngine(name string) (EndianEngine, bool) {
	switch strings.ToLower(name) {
	case "", "big", "bigendian", "big-endian":
		return GetStoreEngine(), true
	case "little", "littleendian", "little-endian":
		return GetLittleEndianEngine(), true
	default:
		return nil, false
	}
}

// IsBigEndian reports whether engine decodes big-endian bytes.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}
