package cmd

import (
	"errors"
	"fmt"

	"github.com/roffe/golin"
	"github.com/roffe/golin/pkg/bar"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Sweep frame identifiers and report which answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetUint8("from")
		to, _ := cmd.Flags().GetUint8("to")
		if to > golin.MaxFrameID {
			to = golin.MaxFrameID
		}
		if from > to {
			return fmt.Errorf("invalid range 0x%02X..0x%02X", from, to)
		}

		c, err := newController(cmd)
		if err != nil {
			return err
		}

		b := bar.New(int(to-from)+1, "scanning LIN identifiers")
		var found []*golin.Frame
		for id := int(from); id <= int(to); id++ {
			select {
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			default:
			}
			f, err := c.RequestFrame(uint8(id))
			if err != nil && !errors.Is(err, golin.ErrTimeout) && !errors.Is(err, golin.ErrNoHeader) {
				return err
			}
			if err == nil && f.Length() > 0 {
				found = append(found, f)
			}
			b.Add(1)
		}
		fmt.Println()

		if len(found) == 0 {
			fmt.Println("no identifiers answered")
			return nil
		}
		for _, f := range found {
			fmt.Println(f.ColorString())
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().Uint8("from", 0x00, "first identifier to probe")
	scanCmd.Flags().Uint8("to", 0x3B, "last identifier to probe")
	rootCmd.AddCommand(scanCmd)
}
