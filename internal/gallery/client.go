package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client drives the gallery state machine against a live API. It owns
// the state; all mutation goes through Reduce, and every page request
// is stamped with the generation current at issue time so responses
// arriving after a query reset are dropped.
//
// Client is not safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	state   State
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLimit sets the page size.
func WithLimit(limit int) Option {
	return func(c *Client) { c.state.Limit = limit }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		logger:  slog.Default(),
		state:   NewState(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.state.Limit <= 0 {
		c.state.Limit = DefaultLimit
	}
	return c
}

// State returns a copy of the current state.
func (c *Client) State() State {
	return c.state
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type pageResponse struct {
	Items      []Item  `json:"items"`
	NextCursor *string `json:"next_cursor"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Login exchanges credentials for a token, resets the query, and loads
// the first page.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

// Register creates an account and behaves like Login on success.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.authenticate(ctx, "/api/auth/register", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) error {
	body, err := json.Marshal(credentialsRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s: %s", path, readError(resp))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}

	c.apply(ctx, LoginSucceeded{Token: tok.Token})
	return nil
}

// Logout discards the token and clears accumulated items.
func (c *Client) Logout() {
	c.state = Reduce(c.state, SetToken{})
}

// SetKeyword switches the active filter and reloads from the start.
func (c *Client) SetKeyword(ctx context.Context, keyword string) {
	c.apply(ctx, SetKeyword{Keyword: keyword})
	c.apply(ctx, FetchRequested{})
}

// SetLimit switches the page size and reloads from the start.
func (c *Client) SetLimit(ctx context.Context, limit int) {
	c.apply(ctx, SetLimit{Limit: limit})
	c.apply(ctx, FetchRequested{})
}

// FetchMore requests the next page. A no-op while a request is in
// flight, after the listing is exhausted, or without a token.
func (c *Client) FetchMore(ctx context.Context) {
	c.apply(ctx, FetchRequested{})
}

// apply reduces one event, then runs the fetch loop: whenever the
// state lands in Loading the page request is issued synchronously and
// its outcome reduced back in, and a parked pending fetch is consumed
// once the state is fetchable again.
func (c *Client) apply(ctx context.Context, ev Event) {
	c.state = Reduce(c.state, ev)

	for {
		if c.state.Phase == PhaseLoading {
			c.state = Reduce(c.state, c.fetchPage(ctx))
			continue
		}
		if c.state.PendingFetch && c.state.Fetchable() {
			c.state = Reduce(c.state, FetchRequested{})
			continue
		}
		return
	}
}

// fetchPage issues one page request for the current query and returns
// the event describing its outcome.
func (c *Client) fetchPage(ctx context.Context) Event {
	gen := c.state.Generation

	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.state.Limit))
	if c.state.Cursor != "" {
		query.Set("cursor", c.state.Cursor)
	}
	if c.state.Keyword != "" {
		query.Set("keyword", c.state.Keyword)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/images?"+query.Encode(), nil)
	if err != nil {
		return FetchFailed{Generation: gen, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.state.Token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("page request failed", "error", err)
		return FetchFailed{Generation: gen, Message: "Could not reach the server"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FetchFailed{Generation: gen, Status: resp.StatusCode, Message: readError(resp)}
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return FetchFailed{Generation: gen, Message: "Malformed server response"}
	}

	nextCursor := ""
	if page.NextCursor != nil {
		nextCursor = *page.NextCursor
	}
	return FetchSucceeded{Generation: gen, Items: page.Items, NextCursor: nextCursor}
}

// readError extracts the {error} body, falling back to the status text.
func readError(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return resp.Status
}
