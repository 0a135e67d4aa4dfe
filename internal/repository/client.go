package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var (
	// ErrNotFound is returned for a 404 from an upstream API.
	ErrNotFound = errors.New("upstream resource not found")
	// ErrDecode is returned when a 2xx body is not the expected JSON.
	ErrDecode = errors.New("invalid upstream response body")
)

// StatusError is returned when an upstream API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s for url: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// JSONFetcher performs a single bounded GET and decodes the JSON body into out.
// Transport failures are returned as is, non-2xx answers as *StatusError.
type JSONFetcher interface {
	GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error
}

// HTTPClient is the resty-backed JSONFetcher shared by all repositories.
type HTTPClient struct {
	client *resty.Client
}

// NewHTTPClient creates a client whose every request is bounded by timeout.
// An optional transport replaces the default one, which is how tests stub the network.
func NewHTTPClient(timeout time.Duration, transport ...http.RoundTripper) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if len(transport) > 0 && transport[0] != nil {
		client.SetTransport(transport[0])
	}
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))
		return nil
	})
	return &HTTPClient{client: client}
}

func (c *HTTPClient) GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	req := c.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(rawURL)
	if err != nil {
		// keep credentials passed as query parameters out of error messages
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = rawURL
		}
		return err
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &StatusError{StatusCode: code, URL: rawURL}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
