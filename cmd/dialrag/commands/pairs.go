// ABOUTME: CLI command group for contrastive pair files
// ABOUTME: Inspects pair CSVs and converts the legacy response format
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/dialrag/internal/pairs"
)

// NewPairsCmd creates the pairs command group
func NewPairsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Inspect and convert contrastive pair files",
	}

	cmd.AddCommand(newPairsCheckCmd(), newPairsConvertCmd())
	return cmd
}

func newPairsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <pairs.csv>",
		Short: "Validate a pairs file and report usable pair count",
		Long: `Validate a contrastive pairs CSV and report how many usable pairs it
contains after format detection and length filtering.

Examples:
  dialrag pairs check pairs.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := pairs.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("loading pairs: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d usable pair(s)\n", args[0], set.Len())
			}
			return nil
		},
	}
}

func newPairsConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src.csv> <dst.csv>",
		Short: "Convert a prompt/love_response/hate_response CSV to anchor format",
		Long: `Convert the legacy prompt,love_response,hate_response CSV layout into
the anchor,positive,negative layout the learner reads directly.

Examples:
  dialrag pairs convert responses.csv pairs.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := pairs.ConvertFile(args[0], args[1])
			if err != nil {
				return fmt.Errorf("converting pairs: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Converted %d pair(s): %s -> %s\n", n, args[0], args[1])
			}
			return nil
		},
	}
}
