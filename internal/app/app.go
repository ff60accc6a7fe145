// Package app wires configuration, logging, the token source and the
// Copilot search SDK together for the CLI commands.
package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/copilot-search/internal/config"
	"github.com/tonimelisma/copilot-search/internal/logger"
	"github.com/tonimelisma/copilot-search/pkg/copilot"
	"golang.org/x/oauth2"
)

// Token refresh happens inside golang.org/x/oauth2; these only describe the
// endpoint it talks to.
var (
	oAuthScopes   = []string{"offline_access", "Files.Read.All", "Sites.Read.All"}
	oAuthAuthURL  = "https://login.microsoftonline.com/common/oauth2/v2.0/authorize"
	oAuthTokenURL = "https://login.microsoftonline.com/common/oauth2/v2.0/token"
)

type App struct {
	Config *config.Configuration
	Logger logger.Logger
	SDK    SDK
}

// NewApp loads the configuration and builds an SDK client from it. It fails
// with copilot.ErrReauthRequired when no access token is available.
func NewApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		cfg.Debug = true
	}

	log := logger.New(logger.Options{Debug: cfg.Debug, JSON: cfg.LogJSON})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tokens, err := newTokenSource(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	httpClient := copilot.NewConfiguredHTTPClient(cfg.HTTP)

	return &App{
		Config: cfg,
		Logger: log,
		SDK:    copilot.NewClient(tokens, httpClient, log.With("component", "copilot")),
	}, nil
}

// newTokenSource picks the auth collaborator for cfg:
//   - an access token from the environment is used as-is;
//   - a stored token with a refresh token and a client ID refreshes through
//     oauth2 and is persisted back to the configuration;
//   - any other stored token is used as-is.
func newTokenSource(ctx context.Context, cfg *config.Configuration, log logger.Logger) (oauth2.TokenSource, error) {
	if cfg.AccessToken != "" {
		log.Debug("using access token from environment")
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"}), nil
	}

	stored := cfg.StoredToken()
	if stored.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token found; run 'copilot-search auth import' or set COPILOT_SEARCH_ACCESS_TOKEN", copilot.ErrReauthRequired)
	}

	if stored.RefreshToken == "" || cfg.ClientID == "" {
		log.Debug("using stored access token without refresh")
		return oauth2.StaticTokenSource(&stored), nil
	}

	oauthConfig := &oauth2.Config{
		ClientID: cfg.ClientID,
		Scopes:   oAuthScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  oAuthAuthURL,
			TokenURL: oAuthTokenURL,
		},
	}

	onNewToken := func(token *oauth2.Token) error {
		return cfg.UpdateToken(*token)
	}

	return newPersistingTokenSource(oauthConfig.TokenSource(ctx, &stored), &stored, onNewToken, log), nil
}
