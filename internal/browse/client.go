// Package browse is a terminal client for the hrlist API. It drives a
// controller.Controller whose pages come from the HTTP list endpoints and
// whose URL state lives in a urlstate.Store.
package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/internal/httpapi"
	"github.com/nrfta/listview-go/urlstate"
)

// StrategyName is reported in listview.Metadata.Strategy for remote pages.
const StrategyName = "remote"

// Client fetches pages of one list endpoint. It implements listview.PageFetcher.
type Client[T any] struct {
	http     *http.Client
	endpoint url.URL
	codec    urlstate.Codec
	sort     string
	desc     bool
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	http *http.Client
	sort string
	desc bool
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		if c != nil {
			o.http = c
		}
	}
}

// WithSort requests a server-side sort key.
func WithSort(key string, desc bool) ClientOption {
	return func(o *clientOptions) {
		o.sort = key
		o.desc = desc
	}
}

// NewClient returns a Client for the list served at endpoint.
func NewClient[T any](endpoint string, codec urlstate.Codec, opts ...ClientOption) (*Client[T], error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute URL", endpoint)
	}

	o := &clientOptions{http: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(o)
	}

	return &Client[T]{
		http:     o.http,
		endpoint: *u,
		codec:    codec,
		sort:     o.sort,
		desc:     o.desc,
	}, nil
}

// URL returns the request URL for q.
func (c *Client[T]) URL(q listview.Query) string {
	values := c.codec.Encode(q)
	if c.sort != "" {
		values.Set("sort", c.sort)
		values.Set("desc", strconv.FormatBool(c.desc))
	}

	u := c.endpoint
	u.RawQuery = values.Encode()
	return u.String()
}

// FetchPage requests one page from the server.
func (c *Client[T]) FetchPage(ctx context.Context, q listview.Query) (*listview.Page[T], error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", c.endpoint.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &body) != nil || body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{Code: resp.StatusCode, Message: body.Error}
	}

	var body httpapi.ListResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", c.endpoint.Path, err)
	}
	if body.Items == nil {
		body.Items = []T{}
	}

	return &listview.Page[T]{
		Items:      body.Items,
		TotalItems: body.TotalItems,
		TotalPages: body.TotalPages,
		Metadata: listview.Metadata{
			Strategy:    StrategyName,
			QueryTimeMs: time.Since(start).Milliseconds(),
		},
	}, nil
}

// StatusError is returned for a non-200 response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Code, e.Message)
}
