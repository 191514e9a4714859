package golin

import (
	"errors"
	"fmt"
)

// Controller drives single-frame exchanges on a LIN bus as the master.
// It owns the transport and the message buffer for the duration of one
// operation; the buffer is overwritten from index 0 on every call. A
// single bus carries one conversation at a time, so callers must
// serialize operations on one Controller.
type Controller struct {
	cfg  *Config
	port Port
	msg  [messageBufferSize]byte
}

func New(port Port, cfg *Config) *Controller {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()
	return &Controller{
		cfg:  cfg,
		port: port,
	}
}

// Listen passively taps the bus for one frame exchange initiated by
// another master. ErrTimeout and ErrNoHeader are recoverable; a captured
// frame is returned even when its checksum did not verify.
func (c *Controller) Listen() (*Frame, error) {
	if err := c.port.Configure(c.cfg.Baudrate); err != nil {
		return nil, err
	}
	defer c.port.Close()

	f, err := c.receiveFrame()
	c.traceReception(f, err)
	return f, err
}

// RequestFrame transmits a header for id and reads the slave response. A
// header answered by silence yields a frame with no data and no error.
func (c *Controller) RequestFrame(id uint8) (*Frame, error) {
	if err := c.port.Configure(c.cfg.Baudrate); err != nil {
		return nil, err
	}
	defer func() {
		c.port.Close()
		c.port.SleepMillis(settleMillis)
	}()

	if err := SendHeader(c.port, id, c.cfg.Baudrate); err != nil {
		return nil, err
	}
	if err := c.port.FlushOutput(); err != nil {
		return nil, err
	}

	f, err := c.receiveFrame()
	c.traceReception(f, err)
	return f, err
}

// WriteFrame transmits a complete frame with the enhanced checksum and
// verifies it against the transceiver loop-back.
func (c *Controller) WriteFrame(id uint8, data []byte) error {
	return c.writeFrame(id, data, false)
}

// WriteFrameClassic transmits a complete frame with the LIN 1.x classic
// checksum.
func (c *Controller) WriteFrameClassic(id uint8, data []byte) error {
	return c.writeFrame(id, data, true)
}

func (c *Controller) writeFrame(id uint8, data []byte, classic bool) error {
	if len(data) > MaxDataLength {
		return ErrDataTooLong
	}
	pid := ProtectedID(id)
	sum := Checksum(pid, data)
	if classic {
		sum = ChecksumClassic(data)
	}

	if err := c.port.Configure(c.cfg.Baudrate); err != nil {
		return err
	}
	defer c.port.Close()

	copy(c.msg[:], data)
	if err := SendHeader(c.port, id, c.cfg.Baudrate); err != nil {
		return err
	}
	if _, err := c.port.Write(c.msg[:len(data)]); err != nil {
		return err
	}
	if _, err := c.port.WriteSingle(sum); err != nil {
		return err
	}
	if err := c.port.FlushOutput(); err != nil {
		return err
	}

	return c.verifyEcho(pid, data, sum)
}

// verifyEcho reads back the frame most LIN transceivers loop onto the
// receive line and compares it with what was just sent. Mismatches are
// warnings unless Config.StrictEcho is set; bytes beyond the buffer are
// extra data from other nodes and never an error.
func (c *Controller) verifyEcho(pid byte, sent []byte, sum byte) error {
	c.port.SleepMillis(echoDelayMillis)

	// the slow break comes back as a skewed byte, discard it
	if c.port.ByteAvailable() {
		c.port.ReadByte()
	}
	var echoSync, echoPID byte
	if c.port.ByteAvailable() {
		echoSync, _ = c.port.ReadByte()
	}
	if c.port.ByteAvailable() {
		echoPID, _ = c.port.ReadByte()
	}

	var n int
	var extra bool
	for c.port.ByteAvailable() {
		if n >= messageBufferSize {
			extra = true
			c.port.ReadByte()
			continue
		}
		b, err := c.port.ReadByte()
		if err != nil {
			break
		}
		c.msg[n] = b
		n++
	}
	if extra {
		c.cfg.OnMessage(fmt.Sprintf("id 0x%02X echo: more bytes available", pid&MaxFrameID))
	}

	mismatch := echoSync != SyncByte || echoPID != pid || n != len(sent)+1
	if !mismatch {
		for i := range sent {
			if c.msg[i] != sent[i] {
				mismatch = true
				break
			}
		}
	}
	if !mismatch && c.msg[n-1] != sum {
		mismatch = true
	}
	if !mismatch {
		return nil
	}

	detail := fmt.Sprintf("id 0x%02X echo mismatch: sync %02X pid %02X got % X want % X|%02X",
		pid&MaxFrameID, echoSync, echoPID, c.msg[:n], sent, sum)
	if c.cfg.StrictEcho {
		return fmt.Errorf("%w: %s", ErrEchoMismatch, detail)
	}
	c.cfg.OnMessage(detail)
	return nil
}

func (c *Controller) receiveFrame() (*Frame, error) {
	rx := receive(c.port, c.msg[:], c.cfg.Timeout.Milliseconds())
	if rx.timedOut {
		return nil, ErrTimeout
	}
	if !rx.header {
		return nil, ErrNoHeader
	}

	f := &Frame{
		ID:  rx.pid & MaxFrameID,
		PID: rx.pid,
	}
	if rx.count == 0 {
		// header completed but no slave answered
		return f, nil
	}

	n := rx.count - 1
	f.Data = make([]byte, n)
	copy(f.Data, c.msg[:n])
	f.Checksum = c.msg[n]
	f.ChecksumValid = validChecksum(rx.pid, c.msg[:n], f.Checksum)
	return f, nil
}

func (c *Controller) traceReception(f *Frame, err error) {
	if !c.cfg.Debug {
		return
	}
	switch {
	case errors.Is(err, ErrTimeout):
		c.cfg.OnMessage("listen timed out")
	case errors.Is(err, ErrNoHeader):
		c.cfg.OnMessage("no valid 00 55 PID header detected")
	case err == nil:
		c.cfg.OnMessage("00 55 " + f.String())
	}
}
