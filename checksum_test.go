package golin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumKnownVector(t *testing.T) {
	// worked example from the LIN 2.2A specification style: enhanced sum
	// over a full 8 byte response
	data := []byte{0xAB, 0x84, 0x1E, 0xF4, 0x2E, 0x84, 0x7A, 0x55}
	require.Equal(t, byte(0x18), Checksum(0x22, data))
}

func TestChecksumEndAroundCarry(t *testing.T) {
	// 0xFF+0xFF = 0x1FE, carry folds back: 0xFE+0x01 = 0xFF, inverted 0x00
	require.Equal(t, byte(0x00), ChecksumClassic([]byte{0xFF, 0xFF}))
}

func TestChecksumEmptyData(t *testing.T) {
	assert.Equal(t, byte(0x7F), Checksum(0x80, nil))
	assert.Equal(t, byte(0xFF), ChecksumClassic(nil))
}

func TestChecksumReservedIDsUseClassic(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	for id := uint8(0x3C); id <= MaxFrameID; id++ {
		pid := ProtectedID(id)
		assert.Equalf(t, ChecksumClassic(data), Checksum(pid, data),
			"id 0x%02X must ignore the protected id in its sum", id)
	}
}

func TestChecksumRoundTrip(t *testing.T) {
	pids := []byte{ProtectedID(0x00), ProtectedID(0x10), ProtectedID(0x22), ProtectedID(0x3B)}
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x80, 0xFF, 0x7F}
	for _, pid := range pids {
		for n := 0; n <= MaxDataLength; n++ {
			received := Checksum(pid, data[:n])
			assert.True(t, validChecksum(pid, data[:n], received))
			// the original validity rule: received plus the inverted
			// recomputation sums to all ones
			assert.Equal(t, byte(0xFF), received+^Checksum(pid, data[:n]))
			// any corruption fails both forms
			assert.False(t, validChecksum(pid, data[:n], received^0x01))
			assert.NotEqual(t, byte(0xFF), (received^0x01)+^Checksum(pid, data[:n]))
		}
	}
}
