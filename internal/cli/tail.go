package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itohio/goirrigate/pkg/history"
	"github.com/itohio/goirrigate/pkg/link"
)

var tailPort string

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow the status lines of a controller on a serial port",
	Long: `Connects to a microcontroller running the firmware and prints every status
line it reports until interrupted. Other lines, such as the boot banner, are logged.

Example:
  irrigo tail
  irrigo tail -p /dev/ttyUSB0`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVarP(&tailPort, "port", "p", "", "serial port (overrides the configuration)")
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if tailPort != "" {
		cfg.Serial.Port = tailPort
	}

	device := link.New(cfg.Serial.Port, cfg.Serial.BaudRate, link.DefaultBufferSize)
	if err := device.Connect(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Serial.Port, err)
	}
	defer device.Close()

	ctx, stop := signalContext(cmd)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "following %s (Ctrl+C to stop)\n", cfg.Serial.Port)

	h := history.New(cfg.Monitor.Window)
	streamRecords(ctx, out, device.Records(), h)
	printSummary(out, h)
	return nil
}
