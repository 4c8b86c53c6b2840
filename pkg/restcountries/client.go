package restcountries

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MakerMaker19/countryinfo/pkg/country"
)

const (
	DefaultBaseURL = "https://restcountries.com/v3.1"
	DefaultTimeout = 10 * time.Second
)

// Fields is the fields= selector sent with every request.
var Fields = []string{
	"name", "capital", "population", "flag", "region", "subregion",
	"timezones", "latlng", "capitalInfo", "tld", "languages", "currencies",
	"borders", "landlocked", "startOfWeek", "continents", "maps",
}

// ErrUpstreamStatus is wrapped into errors for any non-2xx response.
var ErrUpstreamStatus = errors.New("unexpected upstream status")

// Client talks to the REST Countries translation endpoint.
type Client struct {
	http    *http.Client
	timeout time.Duration
	BaseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client somewhere other than the public API.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.BaseURL = strings.TrimRight(base, "/")
	}
}

// WithTimeout bounds each request. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying http.Client. The client passed in
// is never modified; a timeout set with WithTimeout applies to a copy.
// Without WithTimeout the caller's own Timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{BaseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.http == nil:
		timeout := c.timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	case c.timeout > 0:
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// URL builds the request URL for a query. The query is interpolated into
// the path as typed, without escaping.
func (c *Client) URL(query string) string {
	return fmt.Sprintf("%s/translation/%s?fields=%s", c.BaseURL, query, strings.Join(Fields, ","))
}

// Search issues one GET for the query and returns every record in the
// response array. An empty array is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]country.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	return country.Decode(resp.Body)
}
