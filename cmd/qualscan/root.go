package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for qualscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qualscan",
		Short: "Editorial quality assessment for Arabic Wikipedia articles",
		Long: `qualscan assesses the editorial quality of Arabic Wikipedia articles.

It fetches an article through the MediaWiki API and analyzes its structure,
references, maintenance state, links, media, and language, producing a
0-100 quality score, a quality tier, and actionable improvement notes.

Assessments are saved locally, so an article's quality can be tracked
over time with the history command.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAssessCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
