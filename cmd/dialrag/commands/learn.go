// ABOUTME: CLI command to learn steering vectors from contrastive pairs
// ABOUTME: Reads a pairs CSV, learns directions, and persists the collection
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/dialrag/internal/pairs"
)

var learnDimensions []string

// NewLearnCmd creates learn command
func NewLearnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn <pairs.csv>",
		Short: "Learn steering vectors from contrastive pairs",
		Long: `Learn steering vectors from a CSV file of contrastive text pairs.

Accepted CSV formats:
  anchor,positive[,negative]
  text1,text2,label
  prompt,love_response,hate_response

The first dimension gets the mean-difference direction between positive
and negative embeddings. Further dimensions get variance components of
the pair differences when at least 5 pairs are available. Learned
vectors replace any previously saved collection.

Examples:
  dialrag learn pairs.csv
  dialrag learn --dimensions love,trust pairs.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runLearn,
	}

	cmd.Flags().StringSliceVar(&learnDimensions, "dimensions", nil,
		"Dimension names to learn, primary first (default: all canonical dimensions)")

	return cmd
}

func runLearn(cmd *cobra.Command, args []string) error {
	set, err := pairs.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("loading pairs: %w", err)
	}
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d contrastive pairs from %s\n", set.Len(), args[0])
	}

	engine, cfg, err := setupEngine()
	if err != nil {
		return err
	}

	coll, err := engine.LearnVectors(cmd.Context(), set, learnDimensions)
	if err != nil {
		return fmt.Errorf("learning steering vectors: %w", err)
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
	fmt.Fprintf(w, "DIMENSION\tMETHOD\tMAGNITUDE\tSEPARATION\tVARIANCE\n")
	fmt.Fprintf(w, "---------\t------\t---------\t----------\t--------\n")
	for _, v := range coll.Vectors() {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.4f\n",
			v.Dimension, v.Method, v.Magnitude, v.Separation, v.ExplainedVariance)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Learned %d steering vector(s) from %d pairs, saved to %s\n",
			coll.Len(), set.Len(), cfg.VectorsPath)
	}
	return nil
}
