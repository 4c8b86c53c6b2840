package restcountries

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const japanBody = `[{"name":{"official":"Japan"},"capital":["Tokyo"],"flag":"🇯🇵","population":125836021}]`

func TestURL(t *testing.T) {
	c := NewClient(WithBaseURL("https://example.test/v3.1/"))

	got := c.URL("japan")
	assert.Equal(t, "https://example.test/v3.1/translation/japan?fields="+strings.Join(Fields, ","), got)
	assert.Contains(t, got, "fields=name,capital,population,flag,region,subregion,timezones,latlng,capitalInfo,tld,languages,currencies,borders,landlocked,startOfWeek,continents,maps")
}

func TestURL_QueryIsNotEscaped(t *testing.T) {
	c := NewClient(WithBaseURL("https://example.test"))
	assert.Equal(t, "https://example.test/translation/united states?fields="+strings.Join(Fields, ","), c.URL("united states"))
}

func TestSearch_Success(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/translation/japan", r.URL.Path)
		assert.Equal(t, strings.Join(Fields, ","), r.URL.Query().Get("fields"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, japanBody)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL))
	records, err := c.Search(context.Background(), "japan")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Japan", records[0].Name.Official)
	assert.Equal(t, []string{"Tokyo"}, records[0].Capital)
	assert.Equal(t, int64(125836021), records[0].Population)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "exactly one request per search")
}

func TestSearch_QueryWithSpace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translation/united states", r.URL.Path)
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL))
	records, err := c.Search(context.Background(), "united states")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearch_EmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL))
	records, err := c.Search(context.Background(), "atlantis")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"status": 404, "message": "Not Found"}`)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL))
	_, err := c.Search(context.Background(), "atlantis")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestSearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL))
	_, err := c.Search(context.Background(), "anything")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
}

func TestSearch_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[{"name": "Germany"`)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL))
	_, err := c.Search(context.Background(), "germany")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestSearch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c := NewClient(WithBaseURL(base))
	_, err := c.Search(context.Background(), "japan")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute request")
}

func TestSearch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprintln(w, japanBody)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
	_, err := c.Search(context.Background(), "japan")

	require.Error(t, err)
}

func TestSearch_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Search(ctx, "japan")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNewClient_DefaultTimeout(t *testing.T) {
	c := NewClient()
	assert.Equal(t, DefaultTimeout, c.http.Timeout)

	c = NewClient(WithTimeout(3 * time.Second))
	assert.Equal(t, 3*time.Second, c.http.Timeout)

	c = NewClient(WithTimeout(0))
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
}

func TestWithHTTPClient_UsesTransport(t *testing.T) {
	var calls int32
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v3.1/translation/japan", r.URL.Path)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(japanBody)),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})}

	c := NewClient(WithHTTPClient(hc))
	records, err := c.Search(context.Background(), "japan")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestWithHTTPClient_TimeoutDoesNotMutateCallerClient(t *testing.T) {
	for name, opts := range map[string]func(hc *http.Client) []Option{
		"client first": func(hc *http.Client) []Option {
			return []Option{WithHTTPClient(hc), WithTimeout(2 * time.Second)}
		},
		"timeout first": func(hc *http.Client) []Option {
			return []Option{WithTimeout(2 * time.Second), WithHTTPClient(hc)}
		},
	} {
		t.Run(name, func(t *testing.T) {
			hc := &http.Client{Timeout: time.Minute}

			c := NewClient(opts(hc)...)

			assert.Equal(t, time.Minute, hc.Timeout, "caller's client must be untouched")
			assert.Equal(t, 2*time.Second, c.http.Timeout)
			assert.NotSame(t, hc, c.http)
		})
	}
}

func TestWithHTTPClient_KeepsCallerTimeout(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}

	c := NewClient(WithHTTPClient(hc))

	assert.Same(t, hc, c.http)
	assert.Equal(t, time.Minute, c.http.Timeout)
}
