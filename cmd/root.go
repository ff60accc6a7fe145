// Package cmd (root.go) defines the root command for the copilot-search CLI
// and its global flags.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/copilot-search/pkg/copilot"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "copilot-search",
	Short: "Search OneDrive for work or school content with Microsoft 365 Copilot",
	Long: `copilot-search runs hybrid (semantic and lexical) searches across
OneDrive for work or school content through the Microsoft Graph Copilot
search API, using natural language queries.

The access token is read from COPILOT_SEARCH_ACCESS_TOKEN or from a token
stored with 'copilot-search auth import'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, copilot.ErrReauthRequired) {
			fmt.Fprintln(os.Stderr, "Run 'copilot-search auth status' to check the stored token.")
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging for SDK and internal operations")
}
