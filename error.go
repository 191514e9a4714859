package golin

import "errors"

var (
	// ErrTimeout means no byte arrived within the configured wait window.
	ErrTimeout = errors.New("no data on bus before deadline")
	// ErrNoHeader means bytes arrived but never formed a valid
	// break/sync/PID sequence.
	ErrNoHeader = errors.New("no valid break/sync/pid header detected")
	// ErrEchoMismatch means the read-back of a transmitted frame differs
	// from what was sent. Only returned with Config.StrictEcho.
	ErrEchoMismatch = errors.New("echo readback does not match transmitted frame")
	ErrDataTooLong  = errors.New("frame data exceeds 8 bytes")
	ErrNoData       = errors.New("read with no byte available")
)
