package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody limits how much of an error response is kept in an HTTPError.
const maxErrorBody = 4096

// TokenProvider exchanges client credentials for a bearer token.
type TokenProvider struct {
	cfg        Config
	httpClient *http.Client
}

// NewTokenProvider creates a token provider. A nil httpClient uses one with the configured timeout.
func NewTokenProvider(cfg Config, httpClient *http.Client) *TokenProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	return &TokenProvider{cfg: cfg, httpClient: httpClient}
}

// Token performs the client-credentials grant and returns the access token.
// There is no caching and no retry: every call is one POST.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	if err := p.cfg.Validate(); err != nil {
		return "", err
	}

	data := url.Values{}
	data.Set("client_id", p.cfg.ClientID)
	data.Set("client_secret", p.cfg.ClientSecret)
	data.Set("scope", p.cfg.Scope)
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TokenURL(), strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", readHTTPError(resp)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token response did not contain an access_token")
	}

	return tokenResp.AccessToken, nil
}

func readHTTPError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}
