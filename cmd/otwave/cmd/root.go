package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "otwave",
	Short: "OpenTraceWave - VCD waveform reconstruction and timing diagrams",
	Long: `OpenTraceWave (otwave) reconstructs logical signals from value change
dump (VCD) files and renders them as tikztimingtable timing diagrams.

Examples:
  otwave info design.vcd                             # Show dump metadata
  otwave channels design.vcd                         # List reconstructed channels
  otwave render design.vcd --start 0 --end 100       # Render a timing diagram
  otwave render design.vcd --channels clock,enable   # Render selected channels`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
