package golin

import (
	"context"
	"fmt"

	"github.com/avast/retry-go"
)

// Client wraps a Controller with retry semantics for noisy buses.
type Client struct {
	c        *Controller
	attempts uint
}

func NewClient(c *Controller, attempts uint) *Client {
	if attempts == 0 {
		attempts = 3
	}
	return &Client{
		c:        c,
		attempts: attempts,
	}
}

// RequestFrame repeats the request until a slave answers with a valid
// checksum or the attempts run out.
func (cl *Client) RequestFrame(ctx context.Context, id uint8) (*Frame, error) {
	var frame *Frame
	err := retry.Do(
		func() error {
			f, err := cl.c.RequestFrame(id)
			if err != nil {
				return err
			}
			if f.Length() == 0 {
				return fmt.Errorf("no response for id 0x%02X", id)
			}
			if !f.ChecksumValid {
				return fmt.Errorf("checksum failed for id 0x%02X", id)
			}
			frame = f
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(cl.attempts),
		retry.OnRetry(func(n uint, err error) {
			cl.c.cfg.OnMessage(fmt.Sprintf("retry %d: %v", n, err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return frame, nil
}

// WriteFrame forwards to the controller; writes are not retried, a frame
// repeated on the bus is not the same exchange.
func (cl *Client) WriteFrame(id uint8, data []byte) error {
	return cl.c.WriteFrame(id, data)
}
