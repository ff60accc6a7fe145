package app

import (
	"sync"

	"github.com/tonimelisma/copilot-search/internal/logger"
	"golang.org/x/oauth2"
)

// persistingTokenSource wraps an oauth2.TokenSource and calls onNewToken
// whenever the underlying source hands out a different access token, which
// happens after a refresh.
type persistingTokenSource struct {
	base       oauth2.TokenSource
	mu         sync.Mutex // guards lastToken
	lastToken  *oauth2.Token
	onNewToken func(token *oauth2.Token) error
	logger     logger.Logger
}

func newPersistingTokenSource(base oauth2.TokenSource, initialToken *oauth2.Token, onNew func(token *oauth2.Token) error, log logger.Logger) *persistingTokenSource {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &persistingTokenSource{
		base:       base,
		lastToken:  initialToken,
		onNewToken: onNew,
		logger:     log,
	}
}

// Token returns a token from the underlying source. A failure to persist a
// refreshed token is logged but does not fail the call; the token is still
// valid in memory.
func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newToken, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	if s.lastToken == nil || s.lastToken.AccessToken != newToken.AccessToken {
		s.lastToken = newToken
		if s.onNewToken != nil {
			if err := s.onNewToken(newToken); err != nil {
				s.logger.Warnf("Could not persist refreshed token: %v", err)
			} else {
				s.logger.Debug("persisted refreshed token")
			}
		}
	}

	return newToken, nil
}
