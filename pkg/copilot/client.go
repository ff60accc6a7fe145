package copilot

import (
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Logger is the interface that the SDK uses for logging.
type Logger interface {
	Debug(msg string, args ...any)
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// DefaultLogger discards everything.
type DefaultLogger struct{}

func (DefaultLogger) Debug(msg string, args ...any)     {}
func (DefaultLogger) Debugf(format string, args ...any) {}
func (DefaultLogger) Warnf(format string, args ...any)  {}

// HTTPDoer sends a single HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPConfig holds transport settings for the HTTP client.
type HTTPConfig struct {
	Timeout time.Duration `json:"timeout"`
}

// DefaultHTTPConfig returns the transport settings used when none are given.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{Timeout: DefaultTimeout}
}

// NewConfiguredHTTPClient creates an *http.Client from cfg.
func NewConfiguredHTTPClient(cfg HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// Client issues Copilot search requests. It keeps no per-request state, so
// a single Client may be used from multiple goroutines.
type Client struct {
	httpClient HTTPDoer
	tokens     oauth2.TokenSource
	logger     Logger
}

// NewClient creates a new Copilot search client.
// tokens supplies the bearer token for every request; obtaining and
// refreshing it is the token source's job. A nil httpClient uses an
// *http.Client built from DefaultHTTPConfig, and a nil logger discards output.
func NewClient(tokens oauth2.TokenSource, httpClient HTTPDoer, logger Logger) *Client {
	if httpClient == nil {
		httpClient = NewConfiguredHTTPClient(DefaultHTTPConfig())
	}
	if logger == nil {
		logger = DefaultLogger{}
	}
	return &Client{
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}
}

// SetLogger allows users of the SDK to set their own logger
func (c *Client) SetLogger(l Logger) {
	c.logger = l
}

// closeBodySafely closes an HTTP response body and logs any error.
func closeBodySafely(body io.Closer, logger Logger, operation string) {
	if err := body.Close(); err != nil {
		logger.Warnf("Failed to close %s body: %v", operation, err)
	}
}
