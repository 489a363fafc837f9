// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Handles verbose/quiet/format flags shared by all commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗ ██╗ █████╗ ██╗     ██████╗  █████╗  ██████╗
██╔══██╗██║██╔══██╗██║     ██╔══██╗██╔══██╗██╔════╝
██║  ██║██║███████║██║     ██████╔╝███████║██║  ███╗
██║  ██║██║██╔══██║██║     ██╔══██╗██╔══██║██║   ██║
██████╔╝██║██║  ██║███████╗██║  ██║██║  ██║╚██████╔╝
╚═════╝ ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialrag",
		Short: "Dial-steered passage retrieval",
		Long: banner + `
Dialrag retrieves passages from an embedded article corpus, steered by
emotional dial settings. Steering vectors learned from contrastive text
pairs shift the query embedding; dial alignment reranks the results.

Dimensions: love, commitment, trust, belonging, growth (each 0.0-1.0).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewSearchCmd(),
		NewIndexCmd(),
		NewLearnCmd(),
		NewVectorsCmd(),
		NewPairsCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
