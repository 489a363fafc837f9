// ABOUTME: CLI command to inspect persisted steering vectors
// ABOUTME: Reads the saved collection directly, no API key required
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/dialrag/internal/config"
	"github.com/harper/dialrag/internal/steering"
)

// NewVectorsCmd creates vectors command
func NewVectorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Show persisted steering vectors",
		Long: `Show the persisted steering vector collection.

Reads the saved collection from disk without touching the embedding
API, so it works offline.

Examples:
  dialrag vectors
  dialrag vectors --format json`,
		Args: cobra.NoArgs,
		RunE: runVectors,
	}

	return cmd
}

func runVectors(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	coll, err := steering.LoadCollection(cfg.VectorsPath)
	if err != nil {
		return fmt.Errorf("loading steering vectors from %s: %w", cfg.VectorsPath, err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(coll.Vectors(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DIMENSION\tMETHOD\tRANK\tMAGNITUDE\tSEPARATION\tVARIANCE\tWIDTH\n")
	fmt.Fprintf(w, "---------\t------\t----\t---------\t----------\t--------\t-----\n")
	for _, v := range coll.Vectors() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.4f\t%.4f\t%d\n",
			v.Dimension, v.Method, v.ComponentRank, v.Magnitude,
			v.Separation, v.ExplainedVariance, len(v.Vector))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d steering vector(s) at %s\n", coll.Len(), cfg.VectorsPath)
	}
	return nil
}
