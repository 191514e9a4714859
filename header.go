package golin

// SendBreak generates the break field by transmitting a single zero byte
// at half the bus speed, so the byte plus its stop bit spans the time a
// real break field takes at nominal rate. The rate is restored
// unconditionally after the write and flush: the half-speed switch and
// the restore must always pair, short write or not.
func SendBreak(p Port, baudrate int) (int, error) {
	if err := p.FlushOutput(); err != nil {
		return 0, err
	}
	if err := p.SetBaudRate(baudrate / 2); err != nil {
		return 0, err
	}
	n, werr := p.WriteSingle(0x00)
	ferr := p.FlushOutput()
	if err := p.SetBaudRate(baudrate); err != nil {
		return n, err
	}
	if werr != nil {
		return n, werr
	}
	return n, ferr
}

// SendHeader introduces a frame: break, sync and protected identifier. A
// LIN master gets no acknowledgement for its own header, so only
// transport failures are surfaced.
func SendHeader(p Port, id uint8, baudrate int) error {
	if _, err := SendBreak(p, baudrate); err != nil {
		return err
	}
	if _, err := p.WriteSingle(SyncByte); err != nil {
		return err
	}
	_, err := p.WriteSingle(ProtectedID(id))
	return err
}
