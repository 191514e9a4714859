package cmd

import (
	"errors"
	"fmt"

	"github.com/roffe/golin"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available serial ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := golin.ListPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			return errors.New("no serial ports found")
		}
		for _, port := range ports {
			fmt.Printf("port: %s\n", port.Name)
			if port.IsUSB {
				fmt.Printf("   USB ID      %s:%s\n", port.VID, port.PID)
				fmt.Printf("   USB serial  %s\n", port.SerialNumber)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
