package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		BaseURL:      srv.URL,
		ClientID:     "client-123",
		ClientSecret: "secret-456",
		RedirectURI:  "http://localhost:5000/api/auth/callback",
		Scope:        "read_financial_profile",
		Timeout:      2 * time.Second,
	})
	return c, srv
}

func TestAuthorizeURL(t *testing.T) {
	c := NewClient(Config{
		BaseURL:     "https://api-sandbox.example.com",
		ClientID:    "client-123",
		RedirectURI: "http://localhost:5000/api/auth/callback",
		Scope:       "read_financial_profile",
	})

	raw := c.AuthorizeURL("nonce-abc")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "/oauth2/authorize", u.Path)

	q := u.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "client-123", q.Get("client_id"))
	require.Equal(t, "read_financial_profile", q.Get("scope"))
	require.Equal(t, "nonce-abc", q.Get("state"))
}

func TestExchangeCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/oauth2/token", r.URL.Path)
			require.NoError(t, r.ParseForm())
			require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			require.Equal(t, "the-code", r.PostForm.Get("code"))
			require.Equal(t, "client-123", r.PostForm.Get("client_id"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","expires_in":3600}`))
		}))

		tok, err := c.ExchangeCode(context.Background(), "the-code")
		require.NoError(t, err)
		require.Equal(t, "at-1", tok.AccessToken)
		require.Equal(t, "rt-1", tok.RefreshToken)
		require.EqualValues(t, 3600, tok.ExpiresIn)
	})

	t.Run("upstream 500 maps to upstream auth error", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

		_, err := c.ExchangeCode(context.Background(), "the-code")
		require.ErrorIs(t, err, ErrUpstreamAuth)
	})

	t.Run("malformed body maps to upstream auth error", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))

		_, err := c.ExchangeCode(context.Background(), "the-code")
		require.ErrorIs(t, err, ErrUpstreamAuth)
	})

	t.Run("empty access token rejected", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"refresh_token":"rt-1"}`))
		}))

		_, err := c.ExchangeCode(context.Background(), "the-code")
		require.ErrorIs(t, err, ErrUpstreamAuth)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
			require.Equal(t, "rt-old", r.PostForm.Get("refresh_token"))

			_, _ = w.Write([]byte(`{"access_token":"at-2","refresh_token":"rt-2","expires_in":3600}`))
		}))

		tok, err := c.RefreshToken(context.Background(), "rt-old")
		require.NoError(t, err)
		require.Equal(t, "at-2", tok.AccessToken)
	})

	t.Run("invalid_grant means reauthentication", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"revoked"}`))
		}))

		_, err := c.RefreshToken(context.Background(), "rt-dead")
		require.ErrorIs(t, err, ErrReauthenticationRequired)
		require.NotErrorIs(t, err, ErrUpstreamAuth)
	})
}

func TestResourceFetches(t *testing.T) {
	t.Run("accounts decode with exact decimals", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/accounts", r.URL.Path)
			require.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))

			_, _ = w.Write([]byte(`[
				{"id":"check-1","type":"checking","name":"Primary Checking","balance":8942.35,"available":8942.35,"accountNumber":"****8546","interestRate":null},
				{"id":"save-1","type":"savings","name":"High-Yield Savings","balance":15620.45,"available":15620.45,"accountNumber":"****4298","interestRate":1.25}
			]`))
		}))

		accounts, err := c.Accounts(context.Background(), "at-1")
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		require.Equal(t, "8942.35", accounts[0].Balance.String())
		require.Nil(t, accounts[0].InterestRate)
		require.Equal(t, "1.25", accounts[1].InterestRate.String())
	})

	t.Run("401 on resource means reauthentication", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := c.Transactions(context.Background(), "at-stale")
		require.ErrorIs(t, err, ErrReauthenticationRequired)
	})

	t.Run("timeout maps to upstream timeout", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(5 * time.Second):
			case <-r.Context().Done():
			}
		}))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := c.UpcomingBills(ctx, "at-1")
		require.ErrorIs(t, err, ErrUpstreamTimeout)
	})

	t.Run("bills decode", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/bills/upcoming", r.URL.Path)
			_, _ = w.Write([]byte(`[
				{"id":"bill-1","name":"Rent","amount":1200.00,"dueDate":"2026-09-05T00:00:00Z","daysRemaining":5,"icon":"home","color":"blue","category":"Housing","isPaid":false}
			]`))
		}))

		bills, err := c.UpcomingBills(context.Background(), "at-1")
		require.NoError(t, err)
		require.Len(t, bills, 1)
		require.Equal(t, "Rent", bills[0].Name)
		require.Equal(t, "1200", bills[0].Amount.String())
		require.False(t, bills[0].IsPaid)
	})
}
