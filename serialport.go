package golin

import (
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

var epoch = time.Now()

// SerialPort implements Port on top of a go.bug.st serial device.
type SerialPort struct {
	name    string
	mode    serial.Mode
	port    serial.Port
	rx      [16]byte
	pending []byte
}

func NewSerialPort(name string) *SerialPort {
	return &SerialPort{name: name}
}

func (sp *SerialPort) Configure(baudrate int) error {
	sp.mode = serial.Mode{
		BaudRate: baudrate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	if sp.port != nil {
		return sp.port.SetMode(&sp.mode)
	}
	p, err := serial.Open(sp.name, &sp.mode)
	if err != nil {
		return fmt.Errorf("failed to open com port %q : %v", sp.name, err)
	}
	p.SetReadTimeout(time.Millisecond)
	p.ResetOutputBuffer()
	p.ResetInputBuffer()
	sp.port = p
	sp.pending = sp.pending[:0]
	return nil
}

func (sp *SerialPort) WriteSingle(b byte) (int, error) {
	return sp.port.Write([]byte{b})
}

func (sp *SerialPort) Write(p []byte) (int, error) {
	return sp.port.Write(p)
}

// ByteAvailable polls the device with a short read timeout and buffers
// whatever arrived.
func (sp *SerialPort) ByteAvailable() bool {
	if len(sp.pending) > 0 {
		return true
	}
	if sp.port == nil {
		return false
	}
	n, err := sp.port.Read(sp.rx[:])
	if err != nil || n == 0 {
		return false
	}
	sp.pending = append(sp.pending, sp.rx[:n]...)
	return true
}

func (sp *SerialPort) ReadByte() (byte, error) {
	if len(sp.pending) == 0 {
		return 0, ErrNoData
	}
	b := sp.pending[0]
	sp.pending = sp.pending[1:]
	return b, nil
}

func (sp *SerialPort) FlushOutput() error {
	return sp.port.Drain()
}

func (sp *SerialPort) SetBaudRate(rate int) error {
	m := sp.mode
	m.BaudRate = rate
	return sp.port.SetMode(&m)
}

func (sp *SerialPort) Close() error {
	if sp.port == nil {
		return nil
	}
	err := sp.port.Close()
	sp.port = nil
	return err
}

func (sp *SerialPort) MonotonicMillis() int64 {
	return time.Since(epoch).Milliseconds()
}

func (sp *SerialPort) SleepMillis(ms int64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]*enumerator.PortDetails, error) {
	return enumerator.GetDetailedPortsList()
}
