package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itohio/goirrigate/pkg/link"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Args:  cobra.NoArgs,
	RunE:  runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := link.Ports()
	if err != nil {
		return fmt.Errorf("failed to list serial ports: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(ports) == 0 {
		fmt.Fprintln(out, "no serial ports found")
		return nil
	}
	for _, p := range ports {
		if p.Description != "" && p.Description != p.Name {
			fmt.Fprintf(out, "%s\t%s\n", p.Name, p.Description)
		} else {
			fmt.Fprintln(out, p.Name)
		}
	}
	return nil
}
