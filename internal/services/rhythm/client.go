package rhythm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"songbatch/internal/services"
)

const (
	defaultBaseURL     = "https://api.rhythm-plus.com/api/v1"
	defaultAuthURL     = "https://identitytoolkit.googleapis.com/v1/accounts:signUp"
	defaultPageLimit   = 100
	defaultHTTPTimeout = 30 * time.Second
)

// Config describes the catalog API client configuration.
type Config struct {
	BaseURL    string
	AuthURL    string
	APIKey     string
	PageLimit  int
	HTTPClient *http.Client
}

// Client wraps the remote song catalog REST API.
type Client struct {
	baseURL   *url.URL
	authURL   *url.URL
	apiKey    string
	pageLimit int
	http      *http.Client
}

// Song is a search result returned by the catalog. Popularity carries the
// catalog's popularityScore; absent values decode as zero.
type Song struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Popularity float64 `json:"popularityScore"`
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "rhythm", "api key is required", nil)
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("rhythm: parse base url: %w", err)
	}
	auth := strings.TrimSpace(cfg.AuthURL)
	if auth == "" {
		auth = defaultAuthURL
	}
	authURL, err := url.Parse(auth)
	if err != nil {
		return nil, fmt.Errorf("rhythm: parse auth url: %w", err)
	}
	limit := cfg.PageLimit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:   baseURL,
		authURL:   authURL,
		apiKey:    apiKey,
		pageLimit: limit,
		http:      client,
	}, nil
}

// Authenticate obtains an anonymous bearer token from the identity endpoint.
// A missing or empty token is an ErrAuth failure; the run must not proceed
// without one.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	endpoint := *c.authURL
	params := endpoint.Query()
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	payload, err := json.Marshal(map[string]bool{"returnSecureToken": true})
	if err != nil {
		return "", fmt.Errorf("rhythm: encode auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("rhythm: build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrAuth, "rhythm", "token request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", services.Wrap(services.ErrAuth, "rhythm",
			fmt.Sprintf("token request returned %s: %s", resp.Status, strings.TrimSpace(string(body))), nil)
	}

	var decoded struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", services.Wrap(services.ErrAuth, "rhythm", "decode token response", err)
	}
	if strings.TrimSpace(decoded.IDToken) == "" {
		return "", services.Wrap(services.ErrAuth, "rhythm", "token response contained no idToken", nil)
	}
	return decoded.IDToken, nil
}

// Search queries the public song list for entries matching the search term.
// Results arrive in the catalog's own relevance order; that order is
// significant downstream as the ranking tie-break.
func (c *Client) Search(ctx context.Context, query, token string) ([]Song, error) {
	if c == nil {
		return nil, errors.New("rhythm: client is nil")
	}
	endpoint := c.baseURL.JoinPath("song", "list")
	params := url.Values{}
	params.Set("visibilityLevel", "public")
	params.Set("orderBy", "updated_at")
	params.Set("order", "desc")
	params.Set("limit", strconv.Itoa(c.pageLimit))
	params.Set("searchTerm", query)
	params.Set("difficulty", "")
	params.Set("key", "")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("rhythm: build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rhythm: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("rhythm: search returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var songs []Song
	if err := json.NewDecoder(resp.Body).Decode(&songs); err != nil {
		return nil, fmt.Errorf("rhythm: decode search response: %w", err)
	}
	return songs, nil
}

// Session binds a Client to a bearer token so downstream components can
// search without carrying credentials.
type Session struct {
	client *Client
	token  string
}

// NewSession wraps an authenticated client.
func NewSession(client *Client, token string) *Session {
	return &Session{client: client, token: token}
}

// Search queries the catalog using the session token.
func (s *Session) Search(ctx context.Context, query string) ([]Song, error) {
	return s.client.Search(ctx, query, s.token)
}

// Token returns the bearer token held by the session.
func (s *Session) Token() string {
	return s.token
}
