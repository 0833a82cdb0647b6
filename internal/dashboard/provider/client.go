package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the banking provider: the OAuth token endpoint plus the
// read-only resource endpoints the dashboard aggregates. Every call is bounded
// by the configured request timeout and maps deadline overruns to
// ErrUpstreamTimeout so callers never block on a slow provider.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	redirectURI  string
	scope        string
	httpClient   *http.Client
	logger       *slog.Logger
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string
	Timeout      time.Duration
	Logger       *slog.Logger
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		scope:        cfg.Scope,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger.With("component", "provider"),
	}
}

// AuthorizeURL builds the provider authorization URL the browser is sent to,
// embedding the CSRF state nonce.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{
		"response_type": {"code"},
		"client_id":     {c.clientID},
		"redirect_uri":  {c.redirectURI},
		"scope":         {c.scope},
		"state":         {state},
	}
	return c.baseURL + "/oauth2/authorize?" + q.Encode()
}

// ExchangeCode trades an authorization code for a token set.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Token, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {c.redirectURI},
	}
	return c.token(ctx, form)
}

// RefreshToken trades a refresh token for a fresh token set. An invalid_grant
// response means the grant itself is dead and the user must reauthenticate.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (Token, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	return c.token(ctx, form)
}

func (c *Client) token(ctx context.Context, form url.Values) (Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Token{}, mapTransportErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Token{}, mapTransportErr(err)
	}

	if resp.StatusCode != http.StatusOK {
		var oe oauthError
		_ = json.Unmarshal(body, &oe)
		// The error body stays in the server log; clients only ever see the
		// sentinel.
		c.logger.Warn("token endpoint rejected request",
			"status", resp.StatusCode,
			"oauth_error", oe.Error,
		)
		if oe.Error == "invalid_grant" {
			return Token{}, fmt.Errorf("%w: %s", ErrReauthenticationRequired, oe.Error)
		}
		return Token{}, fmt.Errorf("%w: status %d", ErrUpstreamAuth, resp.StatusCode)
	}

	var tok Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return Token{}, fmt.Errorf("%w: decode token response: %v", ErrUpstreamAuth, err)
	}
	if tok.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: empty access token", ErrUpstreamAuth)
	}
	return tok, nil
}

// Profile fetches the authenticated user's identity.
func (c *Client) Profile(ctx context.Context, accessToken string) (Profile, error) {
	var p Profile
	if err := c.get(ctx, "/identity/users/me", accessToken, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (c *Client) Accounts(ctx context.Context, accessToken string) ([]Account, error) {
	var out []Account
	if err := c.get(ctx, "/accounts", accessToken, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Transactions(ctx context.Context, accessToken string) ([]Transaction, error) {
	var out []Transaction
	if err := c.get(ctx, "/transactions", accessToken, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SpendingCategories(ctx context.Context, accessToken string) ([]SpendingCategory, error) {
	var out []SpendingCategory
	if err := c.get(ctx, "/spending-categories", accessToken, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpcomingBills(ctx context.Context, accessToken string) ([]Bill, error) {
	var out []Bill
	if err := c.get(ctx, "/bills/upcoming", accessToken, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path, accessToken string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrReauthenticationRequired, path)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("resource fetch failed",
			"path", path,
			"status", resp.StatusCode,
		)
		return fmt.Errorf("%w: %s status %d", ErrUpstreamAuth, path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstreamAuth, path, err)
	}
	return nil
}

func mapTransportErr(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
}
