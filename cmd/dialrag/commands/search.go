// ABOUTME: CLI command to run dial-steered passage retrieval
// ABOUTME: Supports dial flags, reranking and steering toggles, table/json output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/dialrag/internal/core"
)

var (
	searchDials  []string
	searchTopK   int
	searchNoRank bool
	searchSteer  bool
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Retrieve passages for a query",
		Long: `Retrieve passages for a query, steered by dial settings.

Dials rerank results by alignment with per-passage annotations; unset
dimensions stay neutral (0.5). With --steering, learned vectors also
shift the query embedding before search.

Examples:
  dialrag search "an evening in the garden"
  dialrag search --dial love=0.9 --dial trust=0.2 "a difficult conversation"
  dialrag search --top-k 10 --steering "travel plans"
  dialrag search --format json "quiet mornings"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringArrayVar(&searchDials, "dial", nil, "Dial setting as name=value (repeatable)")
	cmd.Flags().IntVar(&searchTopK, "top-k", core.DefaultTopK, "Number of passages to return")
	cmd.Flags().BoolVar(&searchNoRank, "no-rerank", false, "Skip dial-alignment reranking")
	cmd.Flags().BoolVar(&searchSteer, "steering", false, "Steer the query embedding with learned vectors")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchTopK, "top-k"); err != nil {
		return err
	}

	dials, err := parseDials(searchDials)
	if err != nil {
		return err
	}

	engine, _, err := setupEngine()
	if err != nil {
		return err
	}

	resp, err := engine.Retrieve(cmd.Context(), core.RetrieveRequest{
		Query:        args[0],
		Dials:        dials,
		TopK:         searchTopK,
		UseReranking: !searchNoRank,
		UseSteering:  searchSteer,
	})
	if err != nil {
		return fmt.Errorf("retrieving passages: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(resp.Results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No passages found for query: %s\n", args[0])
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BLEND\tSIM\tDIAL\tTITLE\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t---\t----\t-----\t-------\n")
	for _, r := range resp.Results {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%s\t%s\n",
			r.BlendedScore,
			r.BaseSimilarity,
			r.DialAlignment,
			truncate(r.Metadata.Title, 24),
			truncate(r.Text, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d candidates, steering: %s, %.1fms\n",
			len(resp.Results), resp.TotalCandidates, resp.SteeringMethod, resp.RetrievalTimeMs)
	}
	return nil
}
