package golin

// SimPort is an in-memory Port used to exercise the protocol engine
// without hardware. Reads are served from a scripted queue, writes are
// recorded and, with Echo set, looped back to the receive side the way a
// LIN transceiver does. The clock is virtual: SleepMillis advances it
// without real delay.
type SimPort struct {
	// Echo loops every written byte back onto the receive queue.
	Echo bool
	// WriteErr, when set, fails all writes.
	WriteErr error

	rx         []byte
	tx         []byte
	rates      []int
	baudrate   int
	now        int64
	configured int
	closed     int
}

func NewSimPort() *SimPort {
	return &SimPort{}
}

// QueueRead schedules bytes the simulated bus will deliver.
func (sp *SimPort) QueueRead(b ...byte) {
	sp.rx = append(sp.rx, b...)
}

// TX returns everything the engine wrote, break byte included.
func (sp *SimPort) TX() []byte {
	return sp.tx
}

// Rates returns the baud rate changes in the order they were applied.
func (sp *SimPort) Rates() []int {
	return sp.rates
}

// Opened reports how often the port was configured and closed.
func (sp *SimPort) Opened() (configured, closed int) {
	return sp.configured, sp.closed
}

func (sp *SimPort) Configure(baudrate int) error {
	sp.baudrate = baudrate
	sp.configured++
	return nil
}

func (sp *SimPort) WriteSingle(b byte) (int, error) {
	if sp.WriteErr != nil {
		return 0, sp.WriteErr
	}
	sp.tx = append(sp.tx, b)
	if sp.Echo {
		sp.rx = append(sp.rx, b)
	}
	return 1, nil
}

func (sp *SimPort) Write(p []byte) (int, error) {
	if sp.WriteErr != nil {
		return 0, sp.WriteErr
	}
	sp.tx = append(sp.tx, p...)
	if sp.Echo {
		sp.rx = append(sp.rx, p...)
	}
	return len(p), nil
}

func (sp *SimPort) ByteAvailable() bool {
	return len(sp.rx) > 0
}

func (sp *SimPort) ReadByte() (byte, error) {
	if len(sp.rx) == 0 {
		return 0, ErrNoData
	}
	b := sp.rx[0]
	sp.rx = sp.rx[1:]
	return b, nil
}

func (sp *SimPort) FlushOutput() error {
	return nil
}

func (sp *SimPort) SetBaudRate(rate int) error {
	sp.baudrate = rate
	sp.rates = append(sp.rates, rate)
	return nil
}

func (sp *SimPort) Close() error {
	sp.closed++
	return nil
}

func (sp *SimPort) MonotonicMillis() int64 {
	return sp.now
}

func (sp *SimPort) SleepMillis(ms int64) {
	sp.now += ms
}
