// Package cmd (auth.go) defines the commands that manage the stored access
// token. Tokens are obtained elsewhere; these commands only import, inspect
// and clear them.
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/copilot-search/internal/config"
	"github.com/tonimelisma/copilot-search/internal/ui"
	"golang.org/x/oauth2"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Microsoft Graph access token",
	Long:  `Provides subcommands to import an access token obtained elsewhere, check which token will be used, and clear it.`,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which access token will be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrCreate()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		return authStatusLogic(cfg, time.Now())
	},
}

var authImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Store an access token obtained elsewhere",
	Long: `Stores a Microsoft Graph access token in the configuration file.
Pass --access-token - to read the token from standard input.

If a refresh token and a client ID are supplied, expired access tokens are
refreshed automatically and the new token is saved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrCreate()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		accessToken, _ := cmd.Flags().GetString("access-token")
		refreshToken, _ := cmd.Flags().GetString("refresh-token")
		clientID, _ := cmd.Flags().GetString("client-id")
		expiresIn, err := cmd.Flags().GetDuration("expires-in")
		if err != nil {
			return fmt.Errorf("error parsing expires-in flag: %w", err)
		}

		return authImportLogic(cfg, cmd.InOrStdin(), tokenImport{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ClientID:     clientID,
			ExpiresIn:    expiresIn,
		}, time.Now())
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrCreate()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		return authLogoutLogic(cfg)
	},
}

type tokenImport struct {
	AccessToken  string
	RefreshToken string
	ClientID     string
	ExpiresIn    time.Duration
}

func authStatusLogic(cfg *config.Configuration, now time.Time) error {
	if cfg.AccessToken != "" {
		fmt.Println("Using access token from COPILOT_SEARCH_ACCESS_TOKEN.")
		return nil
	}

	token := cfg.StoredToken()
	if token.AccessToken == "" {
		fmt.Println("No access token stored. Run 'copilot-search auth import' or set COPILOT_SEARCH_ACCESS_TOKEN.")
		return nil
	}

	fmt.Printf("Access token stored in %s\n", cfg.FilePath())
	switch {
	case token.Expiry.IsZero():
		fmt.Println("Expiry:  unknown")
	case token.Expiry.Before(now):
		fmt.Printf("Expiry:  expired at %s\n", token.Expiry.Local().Format(time.RFC3339))
	default:
		fmt.Printf("Expiry:  %s (in %s)\n", token.Expiry.Local().Format(time.RFC3339), token.Expiry.Sub(now).Round(time.Minute))
	}

	switch {
	case token.RefreshToken == "":
		fmt.Println("Refresh: not available")
	case cfg.ClientID == "":
		fmt.Println("Refresh: refresh token stored but no client ID configured")
	default:
		fmt.Println("Refresh: enabled")
	}
	return nil
}

func authImportLogic(cfg *config.Configuration, stdin io.Reader, in tokenImport, now time.Time) error {
	accessToken := in.AccessToken
	if accessToken == "-" {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading access token from stdin: %w", err)
		}
		accessToken = line
	}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return errors.New("an access token is required (--access-token)")
	}

	token := oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: strings.TrimSpace(in.RefreshToken),
	}
	if in.ExpiresIn > 0 {
		token.Expiry = now.Add(in.ExpiresIn)
	}
	if in.ClientID != "" {
		cfg.ClientID = in.ClientID
	}

	if err := cfg.UpdateToken(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	ui.Success("Access token stored.")
	return nil
}

func authLogoutLogic(cfg *config.Configuration) error {
	if err := cfg.UpdateToken(oauth2.Token{}); err != nil {
		return fmt.Errorf("could not clear token: %w", err)
	}
	ui.Success("You have been logged out.")
	return nil
}

func init() {
	authImportCmd.Flags().String("access-token", "", "Access token to store, or - to read it from stdin")
	authImportCmd.Flags().String("refresh-token", "", "Refresh token used to renew the access token")
	authImportCmd.Flags().String("client-id", "", "Application (client) ID that issued the refresh token")
	authImportCmd.Flags().Duration("expires-in", 0, "Remaining lifetime of the access token, e.g. 1h")

	authCmd.AddCommand(authStatusCmd, authImportCmd, authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}
