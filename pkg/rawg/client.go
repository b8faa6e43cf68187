// Package rawg is a small client for the RAWG video game database API.
package rawg

import (
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

	"ludoteca/internal/logging"

	"github.com/sony/gobreaker/v2"
)

// DefaultBaseURL is the public RAWG API root.
const DefaultBaseURL = "https://api.rawg.io/api"

// ErrMissingAPIKey is returned before any request when no key is configured.
var ErrMissingAPIKey = errors.New("rawg api key is not configured")

// Config holds RAWG client settings.
type Config struct {
	BaseURL  string
	APIKey   string
	PageSize int
	Timeout  time.Duration
	// FailureThreshold consecutive failures open the breaker for OpenTimeout.
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Game is a RAWG game as returned by the list endpoint.
type Game struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	BackgroundImage string  `json:"background_image"`
	Rating          float64 `json:"rating"`
	Released        string  `json:"released"`
	DescriptionRaw  string  `json:"description_raw"`
	Platforms       []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

// Client queries RAWG through a circuit breaker.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	breaker    *gobreaker.CircuitBreaker[[]Game]
}

// NewClient creates a Client, filling zero Config fields with defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	threshold := cfg.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[[]Game](gobreaker.Settings{
		Name:        "rawg",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		pageSize:   cfg.PageSize,
		breaker:    breaker,
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// SearchGames calls GET /games with filters plus the key and page size.
func (c *Client) SearchGames(ctx context.Context, filters url.Values) ([]Game, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}
	return c.breaker.Execute(func() ([]Game, error) {
		return c.fetchGames(ctx, filters)
	})
}

func (c *Client) fetchGames(ctx context.Context, filters url.Values) ([]Game, error) {
	query := url.Values{}
	for key, values := range filters {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	query.Set("key", c.apiKey)
	query.Set("page_size", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build rawg request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rawg request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rawg response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rawg response status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed struct {
		Results []Game `json:"results"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse rawg json failed: %w", err)
	}
	if parsed.Results == nil {
		parsed.Results = []Game{}
	}
	return parsed.Results, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
