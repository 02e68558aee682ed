package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var channelsCmd = &cobra.Command{
	Use:   "channels <vcd-file>",
	Short: "List the logical channels reconstructed from a VCD file",
	Long: `Reconstruct the channels of a VCD file and list each one with its
scope, bit width and number of recorded value changes.

Examples:
  otwave channels design.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runChannels,
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}

func runChannels(cmd *cobra.Command, args []string) error {
	sim, err := loadSimulation(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%-24s %-16s %6s %8s\n", "CHANNEL", "SCOPE", "WIDTH", "EVENTS")
	for i := range sim.Channels {
		ch := &sim.Channels[i]
		fmt.Printf("%-24s %-16s %6d %8d\n", ch.Name, ch.Scope, ch.Width, len(ch.Events))
	}
	return nil
}
