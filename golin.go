// Package golin implements the LIN (Local Interconnect Network) data-link
// layer on top of a raw asynchronous serial byte stream: break/sync/PID
// header generation, protected identifier parity, classic and enhanced
// checksums and the byte-stream state machine that reconstructs a frame
// from the bus.
package golin

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"
)

const (
	// SyncByte follows the break field of every frame header.
	SyncByte = 0x55
	// MaxFrameID is the highest 6-bit frame identifier.
	MaxFrameID = 0x3F
	// MaxDataLength is the number of data bytes a single frame can carry.
	MaxDataLength = 8

	DefaultBaudrate = 19200
	DefaultTimeout  = 500 * time.Millisecond

	// 8 data + 1 checksum + slack for over-transmitting slaves
	messageBufferSize = MaxDataLength + 1 + 4

	interByteGapMillis = 2
	echoDelayMillis    = 10
	settleMillis       = 20
)

// Port is the byte-level serial transport the protocol engine drives. The
// engine never touches a concrete serial type; implementations wrap real
// hardware (SerialPort) or a scripted bus (SimPort).
//
// Timekeeping lives on the transport so the engine's deadlines and delays
// run against the same clock the transport does.
type Port interface {
	// Configure (re)initializes the link at the given baudrate, 8N1.
	// Must be callable repeatedly.
	Configure(baudrate int) error
	// WriteSingle writes one byte and reports the count written, so a
	// short write of the break byte stays visible to the caller.
	WriteSingle(b byte) (int, error)
	Write(p []byte) (int, error)
	// ByteAvailable reports whether ReadByte will succeed.
	ByteAvailable() bool
	// ReadByte pops the next byte. Callers must check ByteAvailable first.
	ReadByte() (byte, error)
	// FlushOutput blocks until all written bytes have left the transmitter.
	FlushOutput() error
	// SetBaudRate changes the rate on an open link without reconfiguring
	// framing.
	SetBaudRate(rate int) error
	Close() error

	MonotonicMillis() int64
	SleepMillis(ms int64)
}

// Config holds the controller settings. The zero value picks the LIN
// defaults: 19200 baud and a 500ms receive timeout.
type Config struct {
	Baudrate int
	// Timeout bounds the wait for the first byte of a response.
	Timeout time.Duration
	// StrictEcho turns a write echo mismatch into an error instead of a
	// warning.
	StrictEcho bool
	Debug      bool
	OnMessage  func(string)
}

func (cfg *Config) setDefaults() {
	if cfg.Baudrate <= 0 {
		cfg.Baudrate = DefaultBaudrate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.OnMessage == nil {
		cfg.OnMessage = func(msg string) {
			_, file, no, ok := runtime.Caller(1)
			if ok {
				fmt.Printf("%s#%d %v\n", filepath.Base(file), no, msg)
			} else {
				fmt.Println(msg)
			}
		}
	}
}
