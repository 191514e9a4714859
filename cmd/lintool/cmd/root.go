package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/roffe/golin"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "lintool",
	Short:        "LIN bus swiss army tool",
	Long:         `Listen to, request from and write frames on a LIN bus over a serial adapter`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	rootCmd.ExecuteContext(ctx)
}

const (
	flagPort     = "port"
	flagBaudrate = "baudrate"
	flagDebug    = "debug"
	flagTimeout  = "timeout"
)

func init() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	pf := rootCmd.PersistentFlags()
	pf.StringP(flagPort, "p", "", "com-port, empty = choose interactively")
	pf.IntP(flagBaudrate, "b", golin.DefaultBaudrate, "LIN bus baudrate")
	pf.BoolP(flagDebug, "d", false, "debug mode")
	pf.DurationP(flagTimeout, "t", golin.DefaultTimeout, "frame receive timeout")
}

func newController(cmd *cobra.Command) (*golin.Controller, error) {
	port, _ := cmd.Flags().GetString(flagPort)
	baudrate, _ := cmd.Flags().GetInt(flagBaudrate)
	debug, _ := cmd.Flags().GetBool(flagDebug)
	timeout, _ := cmd.Flags().GetDuration(flagTimeout)

	if port == "" {
		selected, err := selectPort()
		if err != nil {
			return nil, err
		}
		port = selected
	}

	cfg := &golin.Config{
		Baudrate: baudrate,
		Timeout:  timeout,
		Debug:    debug,
	}
	return golin.New(golin.NewSerialPort(port), cfg), nil
}

func selectPort() (string, error) {
	ports, err := golin.ListPorts()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", errors.New("no serial ports found")
	}
	var items []string
	for _, p := range ports {
		items = append(items, p.Name)
	}
	prompt := promptui.Select{
		Label:    "Select port",
		HideHelp: true,
		Items:    items,
	}
	_, result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return result, nil
}
