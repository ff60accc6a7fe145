package copilot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// SearchWithCopilot runs a hybrid (semantic and lexical) search over OneDrive
// for work or school content and returns the response body untouched.
//
// Exactly one request is sent. There are no retries and no timeout beyond
// what ctx and the HTTP client impose. Errors from the token source and the
// transport are returned as they are; a non-2xx status yields an *APIError.
func (c *Client) SearchWithCopilot(ctx context.Context, in SearchInput) (json.RawMessage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if c.tokens == nil {
		return nil, fmt.Errorf("%w: no token source configured", ErrReauthRequired)
	}
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	if token == nil || token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrReauthRequired)
	}

	payload, err := json.Marshal(BuildRequestBody(in))
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, SearchURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request failed: %w", err)
	}
	req.Header.Set("Authorization", bearerPrefix+token.AccessToken)
	req.Header.Set("Content-Type", contentTypeJSON)

	c.logger.Debug("search request", "method", req.Method, "url", SearchURL, "bytes", len(payload))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.New("HTTP client returned no response")
	}
	defer closeBodySafely(res.Body, c.logger, "search response")

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	c.logger.Debugf("search response: %s (%d bytes)", res.Status, len(body))

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, newAPIError(res, body)
	}

	return json.RawMessage(body), nil
}
