package golin

type recvState int

const (
	awaitBreak recvState = iota
	awaitSync
	awaitPID
	collecting
	done
)

// receiver reconstructs one frame from the incoming byte stream. It scans
// for a break/sync/PID header, then collects up to 8 data bytes plus one
// checksum byte into buf; anything beyond that is drained so the next
// exchange starts from an empty transport.
type receiver struct {
	state recvState
	pid   byte
	count int
	buf   []byte
}

func (r *receiver) feed(b byte) {
	switch r.state {
	case awaitBreak:
		if b == 0x00 {
			r.state = awaitSync
		}
	case awaitSync:
		switch b {
		case SyncByte:
			r.state = awaitPID
		case 0x00:
			// a fresh break, keep waiting for sync
		default:
			r.state = awaitBreak
		}
	case awaitPID:
		r.pid = b
		r.state = collecting
	case collecting:
		r.buf[r.count] = b
		r.count++
		if r.count == MaxDataLength+1 {
			r.state = done
		}
	case done:
		// slave over-transmission or bus noise, discard
	}
}

func (r *receiver) headerSeen() bool {
	return r.state == collecting || r.state == done
}

// reception is the raw result of one receive attempt, interpreted by the
// controller.
type reception struct {
	timedOut bool
	header   bool
	pid      byte
	count    int // data + checksum bytes collected
}

// receive waits for bus activity and runs the state machine over the
// byte burst. The wait for the first byte is bounded by timeoutMillis;
// between bytes a short fixed gap is allowed before the burst is
// considered over.
func receive(p Port, buf []byte, timeoutMillis int64) reception {
	deadline := p.MonotonicMillis() + timeoutMillis
	for !p.ByteAvailable() {
		if p.MonotonicMillis() > deadline {
			return reception{timedOut: true}
		}
		p.SleepMillis(1)
	}

	r := receiver{buf: buf}
	for p.ByteAvailable() {
		b, err := p.ReadByte()
		if err != nil {
			break
		}
		r.feed(b)
		if !p.ByteAvailable() {
			// accommodate byte-to-byte gaps within one frame
			p.SleepMillis(interByteGapMillis)
		}
	}

	return reception{
		header: r.headerSeen(),
		pid:    r.pid,
		count:  r.count,
	}
}
