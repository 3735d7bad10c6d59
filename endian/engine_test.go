package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetStoreEngine(t *testing.T) {
	engine := GetStoreEngine()
	require.Equal(t, binary.BigEndian, engine)
	require.True(t, IsBigEndian(engine))

	raw := []byte{0x00, 0x00, 0x01, 0x02}
	require.Equal(t, uint32(0x0102), engine.Uint32(raw))
}

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.False(t, IsBigEndian(engine))

	raw := []byte{0x02, 0x01, 0x00, 0x00}
	require.Equal(t, uint32(0x0102), engine.Uint32(raw))

	buf := engine.AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{0x02, 0x01}, buf)
}

func TestParseEngine(t *testing.T) {
	tests := []struct {
		name   string
		want   EndianEngine
		wantOK bool
	}{
		{"", binary.BigEndian, true},
		{"big", binary.BigEndian, true},
		{"Big-Endian", binary.BigEndian, true},
		{"little", binary.LittleEndian, true},
		{"LittleEndian", binary.LittleEndian, true},
		{"middle", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, ok := ParseEngine(tt.name)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, engine)
			}
		})
	}
}
