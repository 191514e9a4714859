package golin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedIDKnownValues(t *testing.T) {
	tests := []struct {
		id   uint8
		want uint8
	}{
		{0x00, 0x80},
		{0x01, 0xC1},
		{0x10, 0x50},
		{0x22, 0xE2},
		{0x3C, 0x3C}, // diagnostic master request
		{0x3D, 0x7D}, // diagnostic slave response
	}
	for _, tt := range tests {
		require.Equalf(t, tt.want, ProtectedID(tt.id), "id 0x%02X", tt.id)
	}
}

func TestProtectedIDExhaustive(t *testing.T) {
	for id := uint8(0); id <= MaxFrameID; id++ {
		pid := ProtectedID(id)
		assert.Equalf(t, id, pid&MaxFrameID, "identifier bits not preserved for 0x%02X", id)

		p0 := bit(id, 0) ^ bit(id, 1) ^ bit(id, 2) ^ bit(id, 4)
		p1 := ^(bit(id, 1) ^ bit(id, 3) ^ bit(id, 4) ^ bit(id, 5)) & 0x01
		assert.Equalf(t, p0, pid>>6&0x01, "p0 wrong for 0x%02X", id)
		assert.Equalf(t, p1, pid>>7&0x01, "p1 wrong for 0x%02X", id)
	}
}

func TestProtectedIDMasksHighBits(t *testing.T) {
	assert.Equal(t, ProtectedID(0x02), ProtectedID(0x42))
}
