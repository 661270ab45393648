package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/itohio/goirrigate/pkg/board"
)

const splashDuration = 2 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the controller on the Raspberry Pi board",
	Long: `Opens the ADC, relay and display described in the board section of the
configuration and runs the control loop until interrupted.

The pump is switched off on exit.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, ic, err := loadConfig()
	if err != nil {
		return err
	}

	b, err := board.Open(cfg.Board)
	if err != nil {
		return fmt.Errorf("failed to open board: %w", err)
	}
	defer b.Close()

	ctrl, err := b.Controller(ic)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	ctrl.Splash(cfg.Controller.Title)
	if !pause(ctx, splashDuration) {
		return nil
	}

	log.Printf("irrigo: running (dry below %d%%, wet above %d%%, every %s)", ic.DryThreshold, ic.WetThreshold, ic.CycleDelay)
	ctrl.Run(ctx)
	log.Println("irrigo: stopped, pump off")
	return nil
}

// pause waits for d and reports false if ctx ended first.
func pause(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
