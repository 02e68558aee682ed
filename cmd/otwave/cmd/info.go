package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <vcd-file>",
	Short: "Show metadata and declarations from a VCD file",
	Long: `Parse a VCD file and display its header metadata (date, timescale)
and the declared scope/variable tree.

Examples:
  otwave info design.vcd
  otwave info -v design.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tokens, err := vcd.Tokenize(file)
	if err != nil {
		return fmt.Errorf("failed to tokenize %s: %w", filename, err)
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case vcd.KindDate:
			if date, err := vcd.ParseDate(tok.Text); err == nil {
				fmt.Printf("Date:      %s\n", date.Format("2006-01-02 15:04:05"))
			} else {
				fmt.Printf("Date:      %s\n", tok.Text)
			}
		case vcd.KindTimescale:
			if ts, err := vcd.ParseTimescale(tok.Text); err == nil {
				fmt.Printf("Timescale: %s\n", ts)
			} else {
				fmt.Printf("Timescale: %s\n", tok.Text)
			}
		case vcd.KindVersion:
			fmt.Printf("Version:   %s\n", tok.Text)
		}
	}

	index, err := wave.BuildDeclarationIndex(tokens)
	if err != nil {
		return err
	}

	fmt.Println("\nScopes:")
	for _, scope := range index.Scopes() {
		fmt.Printf("  %s\n", scope)
		for _, ref := range index.References(scope) {
			group := index.Group(wave.GroupKey{Scope: scope, Reference: ref})
			if verbose {
				bits := make([]int, 0, len(group))
				for bit := range group {
					bits = append(bits, bit)
				}
				sort.Ints(bits)
				for _, bit := range bits {
					decl := group[bit]
					if bit == wave.ScalarBit {
						fmt.Printf("    %s (id %s, width %d)\n", ref, decl.ID, decl.Width)
					} else {
						fmt.Printf("    %s[%d] (id %s)\n", ref, bit, decl.ID)
					}
				}
			} else {
				fmt.Printf("    %s (%d bit)\n", ref, len(group))
			}
		}
	}
	return nil
}
