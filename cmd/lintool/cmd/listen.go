package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roffe/golin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Passively capture frames on the bus",
	Long:  `Tap the bus without transmitting anything and print every captured frame until interrupted`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newController(cmd)
		if err != nil {
			return err
		}

		frames := make(chan *golin.Frame, 16)
		errg, ctx := errgroup.WithContext(cmd.Context())

		errg.Go(func() error {
			defer close(frames)
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				f, err := c.Listen()
				if errors.Is(err, golin.ErrTimeout) || errors.Is(err, golin.ErrNoHeader) {
					continue
				}
				if err != nil {
					return err
				}
				select {
				case frames <- f:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})

		errg.Go(func() error {
			for f := range frames {
				fmt.Printf(" %s || %s\n", time.Now().Format("15:04:05.00000"), f.ColorString())
			}
			return nil
		})

		if err := errg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}
