package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/copilot-search/internal/app"
	"github.com/tonimelisma/copilot-search/internal/ui"
	"github.com/tonimelisma/copilot-search/pkg/copilot"
	"golang.org/x/term"
)

// stderrIsTerminal reports whether the spinner has a terminal to draw on.
var stderrIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search OneDrive content with a natural language query",
	Long: `Performs a hybrid (semantic and lexical) search across OneDrive for work
or school content. The query may be up to 1,500 characters; multiple
arguments are joined with spaces.

Examples:
  copilot-search search "Q1 financial report"
  copilot-search search budget docs --page-size 10 \
    --filter 'path:"https://contoso-my.sharepoint.com/personal/user_contoso_com/Documents/Finance/"'
  copilot-search search "design review" --metadata title,author`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(cmd)
		if err != nil {
			return fmt.Errorf("error creating app: %w", err)
		}
		return searchLogic(a, cmd, args, cmd.OutOrStdout())
	},
}

// searchOptions mirrors the search command's flags.
type searchOptions struct {
	PageSize         int
	FilterExpression string
	ResourceMetadata []string
	Compact          bool
	Quiet            bool
}

func parseSearchFlags(cmd *cobra.Command, defaultPageSize int) (searchOptions, error) {
	var opts searchOptions
	var err error

	opts.PageSize, err = cmd.Flags().GetInt("page-size")
	if err != nil {
		return opts, fmt.Errorf("error parsing page-size flag: %w", err)
	}
	if !cmd.Flags().Changed("page-size") && defaultPageSize > 0 {
		opts.PageSize = defaultPageSize
	}

	if opts.FilterExpression, err = cmd.Flags().GetString("filter"); err != nil {
		return opts, fmt.Errorf("error parsing filter flag: %w", err)
	}
	if opts.ResourceMetadata, err = cmd.Flags().GetStringSlice("metadata"); err != nil {
		return opts, fmt.Errorf("error parsing metadata flag: %w", err)
	}
	if opts.Compact, err = cmd.Flags().GetBool("compact"); err != nil {
		return opts, fmt.Errorf("error parsing compact flag: %w", err)
	}
	if opts.Quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("error parsing quiet flag: %w", err)
	}

	return opts, nil
}

func searchLogic(a *app.App, cmd *cobra.Command, args []string, out io.Writer) error {
	defaultPageSize := copilot.DefaultPageSize
	if a.Config != nil {
		defaultPageSize = a.Config.PageSize
	}

	opts, err := parseSearchFlags(cmd, defaultPageSize)
	if err != nil {
		return err
	}

	input := copilot.SearchInput{
		Query:            strings.Join(args, " "),
		PageSize:         opts.PageSize,
		FilterExpression: opts.FilterExpression,
		ResourceMetadata: opts.ResourceMetadata,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stopSpinner := func() {}
	if !opts.Quiet && stderrIsTerminal() {
		spinner := ui.NewSpinner("Searching...")
		stopSpinner = func() { _ = spinner.Finish() }
	}

	response, err := a.SDK.SearchWithCopilot(ctx, input)
	stopSpinner()
	if err != nil {
		return fmt.Errorf("searching with Copilot: %w", err)
	}

	return ui.PrintJSON(out, response, opts.Compact)
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page-size", copilot.DefaultPageSize, "Number of results to return per page (1-100)")
	cmd.Flags().String("filter", "", `KQL filter expression for OneDrive paths, e.g. path:"https://contoso-my.sharepoint.com/personal/user_contoso_com/Documents/Finance/"`)
	cmd.Flags().StringSlice("metadata", nil, "Metadata field names to include in results (e.g. title,author)")
	cmd.Flags().Bool("compact", false, "Print the response exactly as received")
	cmd.Flags().BoolP("quiet", "q", false, "Do not show a progress spinner (implied when stderr is not a terminal)")
}

func init() {
	addSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
