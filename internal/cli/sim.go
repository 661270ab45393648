package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/itohio/goirrigate/pkg/config"
	"github.com/itohio/goirrigate/pkg/history"
	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
)

var simDuration time.Duration

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the controller against a simulated soil bed",
	Long: `Runs the real control loop against a soil model that dries out while the
pump is off and wets while it is on. The mock section of the configuration sets
the rates, noise and tick.

Example:
  irrigo sim
  irrigo sim --duration 30s`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().DurationVarP(&simDuration, "duration", "d", 0, "stop after this long (0 runs until interrupted)")
	rootCmd.AddCommand(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, ic, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	if simDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, simDuration)
		defer cancel()
	}

	return simulate(ctx, cmd.OutOrStdout(), cfg, ic)
}

func simulate(ctx context.Context, w io.Writer, cfg *config.Config, ic irrigation.Config) error {
	mock := link.NewMock(&cfg.Mock, ic)
	if err := mock.Connect(); err != nil {
		return fmt.Errorf("failed to start simulation: %w", err)
	}
	defer mock.Close()

	h := history.New(cfg.Monitor.Window)
	streamRecords(ctx, w, mock.Records(), h)
	printSummary(w, h)
	return nil
}
