package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <id> <data>...",
	Short: "Write a complete frame to the bus",
	Long:  `Transmit header, up to 8 data bytes and checksum, then verify the transceiver echo`,
	Args:  cobra.RangeArgs(1, 9),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		data := make([]byte, 0, len(args)-1)
		for _, arg := range args[1:] {
			b, err := strconv.ParseUint(arg, 16, 8)
			if err != nil {
				return fmt.Errorf("invalid data byte %q: %w", arg, err)
			}
			data = append(data, byte(b))
		}

		c, err := newController(cmd)
		if err != nil {
			return err
		}

		classic, _ := cmd.Flags().GetBool("classic")
		if classic {
			return c.WriteFrameClassic(id, data)
		}
		return c.WriteFrame(id, data)
	},
}

func init() {
	sendCmd.Flags().Bool("classic", false, "use the LIN 1.x classic checksum")
	rootCmd.AddCommand(sendCmd)
}
