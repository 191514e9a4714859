package cmd

import (
	"fmt"
	"strconv"

	"github.com/roffe/golin"
	"github.com/spf13/cobra"
)

var requestCmd = &cobra.Command{
	Use:   "request <id>",
	Short: "Request a frame from a slave",
	Long:  `Send a header for the given identifier and print the response, retrying on checksum failure or silence`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := newController(cmd)
		if err != nil {
			return err
		}
		retries, _ := cmd.Flags().GetUint("retries")

		f, err := golin.NewClient(c, retries).RequestFrame(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Println(f.ColorString())
		return nil
	},
}

func init() {
	requestCmd.Flags().UintP("retries", "r", 3, "request attempts before giving up")
	rootCmd.AddCommand(requestCmd)
}

func parseID(s string) (uint8, error) {
	id, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid frame id %q: %w", s, err)
	}
	if id > golin.MaxFrameID {
		return 0, fmt.Errorf("frame id 0x%02X out of range, max 0x%02X", id, golin.MaxFrameID)
	}
	return uint8(id), nil
}
