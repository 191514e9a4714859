package golin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFrame(t *testing.T) {
	data := []byte{0x01, 0x02}
	sp := NewSimPort()
	// echoed header followed by the slave response
	sp.QueueRead(0x00, 0x55, 0x50)
	sp.QueueRead(data...)
	sp.QueueRead(Checksum(0x50, data))

	f, err := New(sp, nil).RequestFrame(0x10)
	require.NoError(t, err)
	require.Equal(t, uint8(0x10), f.ID)
	require.Equal(t, data, f.Data)
	require.True(t, f.ChecksumValid)

	// break, sync and protected id went out
	assert.Equal(t, []byte{0x00, 0x55, 0x50}, sp.TX())
	// break at half rate, restored before anything else was written
	assert.Equal(t, []int{DefaultBaudrate / 2, DefaultBaudrate}, sp.Rates())
}

func TestRequestFrameNoResponse(t *testing.T) {
	sp := NewSimPort()
	sp.QueueRead(0x00, 0x55, 0x50)

	f, err := New(sp, nil).RequestFrame(0x10)
	require.NoError(t, err)
	require.Equal(t, 0, f.Length())
	require.Equal(t, uint8(0x10), f.ID)
}

func TestSendBreakRestoresRateOnFailure(t *testing.T) {
	sp := NewSimPort()
	sp.WriteErr = errors.New("tx shorted")

	_, err := SendBreak(sp, DefaultBaudrate)
	require.Error(t, err)
	// the half-speed switch and the restore must always pair
	require.Equal(t, []int{DefaultBaudrate / 2, DefaultBaudrate}, sp.Rates())
}

func TestWriteFrameEchoVerifies(t *testing.T) {
	data := []byte{0x11, 0x22, 0x33}
	sp := NewSimPort()
	sp.Echo = true

	c := New(sp, &Config{StrictEcho: true})
	require.NoError(t, c.WriteFrame(0x10, data))

	want := append([]byte{0x00, 0x55, 0x50}, data...)
	want = append(want, Checksum(0x50, data))
	assert.Equal(t, want, sp.TX())
}

func TestWriteFrameClassicChecksum(t *testing.T) {
	data := []byte{0x11, 0x22, 0x33}
	sp := NewSimPort()
	sp.Echo = true

	c := New(sp, &Config{StrictEcho: true})
	require.NoError(t, c.WriteFrameClassic(0x10, data))

	tx := sp.TX()
	assert.Equal(t, ChecksumClassic(data), tx[len(tx)-1])
}

func TestWriteFrameEchoMismatchStrict(t *testing.T) {
	data := []byte{0x11, 0x22, 0x33}
	sum := Checksum(0x50, data)
	// any single altered byte of the echo must flag a mismatch
	tests := []struct {
		name string
		echo []byte
	}{
		{"flipped sync", []byte{0x00, 0x54, 0x50, 0x11, 0x22, 0x33, sum}},
		{"flipped pid", []byte{0x00, 0x55, 0x51, 0x11, 0x22, 0x33, sum}},
		{"flipped payload byte", []byte{0x00, 0x55, 0x50, 0x11, 0x23, 0x33, sum}},
		{"flipped checksum", []byte{0x00, 0x55, 0x50, 0x11, 0x22, 0x33, sum ^ 0x01}},
		{"missing payload byte", []byte{0x00, 0x55, 0x50, 0x11, 0x22, sum}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := NewSimPort()
			sp.QueueRead(tt.echo...)

			c := New(sp, &Config{StrictEcho: true})
			err := c.WriteFrame(0x10, data)
			require.ErrorIs(t, err, ErrEchoMismatch)
		})
	}
}

func TestWriteFrameEchoMismatchSoft(t *testing.T) {
	data := []byte{0x11, 0x22, 0x33}
	sum := Checksum(0x50, data)
	sp := NewSimPort()
	sp.QueueRead(0x00, 0x55, 0x50, 0x11, 0x23, 0x33, sum)

	var msgs []string
	c := New(sp, &Config{OnMessage: func(msg string) { msgs = append(msgs, msg) }})
	require.NoError(t, c.WriteFrame(0x10, data))
	require.NotEmpty(t, msgs, "soft echo mismatch must be reported")
}

func TestWriteFrameEchoExtraBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	sum := Checksum(0x50, data)
	sp := NewSimPort()
	sp.QueueRead(0x00, 0x55, 0x50)
	sp.QueueRead(data...)
	sp.QueueRead(sum)
	// 4 slack bytes fill the buffer, anything beyond is extra
	sp.QueueRead(0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5)

	var msgs []string
	c := New(sp, &Config{OnMessage: func(msg string) { msgs = append(msgs, msg) }})
	require.NoError(t, c.WriteFrame(0x10, data))
	require.NotEmpty(t, msgs)
	assert.False(t, sp.ByteAvailable(), "extra echo bytes must be drained")
}

func TestWriteFrameDataTooLong(t *testing.T) {
	sp := NewSimPort()
	err := New(sp, nil).WriteFrame(0x10, make([]byte, MaxDataLength+1))
	require.ErrorIs(t, err, ErrDataTooLong)
}

func TestClientRequestFrame(t *testing.T) {
	data := []byte{0xCA, 0xFE}
	sp := NewSimPort()
	sp.QueueRead(0x00, 0x55, 0x50)
	sp.QueueRead(data...)
	sp.QueueRead(Checksum(0x50, data))

	cl := NewClient(New(sp, nil), 2)
	f, err := cl.RequestFrame(context.Background(), 0x10)
	require.NoError(t, err)
	require.Equal(t, data, f.Data)
}

func TestClientRequestFrameExhaustsAttempts(t *testing.T) {
	sp := NewSimPort()
	var msgs []string
	c := New(sp, &Config{OnMessage: func(msg string) { msgs = append(msgs, msg) }})

	cl := NewClient(c, 2)
	_, err := cl.RequestFrame(context.Background(), 0x10)
	require.Error(t, err)
	require.NotEmpty(t, msgs, "retries must be reported")
}
