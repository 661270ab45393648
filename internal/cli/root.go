package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/itohio/goirrigate/pkg/config"
	"github.com/itohio/goirrigate/pkg/irrigation"
)

// Version is set at build time via ldflags.
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "irrigo",
	Short: "Closed-loop soil moisture irrigation controller",
	Long: `irrigo reads a soil moisture probe, switches a pump relay with hysteresis
and reports every cycle on a display and as a log line.

It runs the controller on a Raspberry Pi, simulates a soil bed for testing,
or follows the status lines of a microcontroller running the firmware.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("irrigo version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "configuration file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the file named by --config and validates the controller section.
func loadConfig() (*config.Config, irrigation.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, irrigation.Config{}, err
	}
	ic, err := cfg.Irrigation()
	if err != nil {
		return nil, irrigation.Config{}, err
	}
	return cfg, ic, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
