package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/widyasatria/flightbook/internal/ratelimit"
)

// Config describes how to reach the remote flight management API.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Limiter *ratelimit.ResourceLimiter
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8080/api",
		Timeout: 10 * time.Second,
	}
}

// base is the shared plumbing under the three resource clients. It holds no
// state beyond the connection settings; no caching, no retries.
type base struct {
	http     *http.Client
	baseURL  string
	resource string
	limiter  *ratelimit.ResourceLimiter
}

func newBase(cfg Config, resource string) base {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return base{
		http:     &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/") + "/" + resource,
		resource: resource,
		limiter:  cfg.Limiter,
	}
}

func (b *base) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return b.send(ctx, http.MethodGet, path, query, nil, out)
}

func (b *base) send(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx, b.resource); err != nil {
			return &TransportError{Resource: b.resource, Err: err}
		}
	}

	endpoint := b.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Resource: b.resource, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &TransportError{Resource: b.resource, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return &TransportError{Resource: b.resource, Err: err}
	}
	defer resp.Body.Close()

	if err := b.checkStatus(resp, path); err != nil {
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Resource: b.resource, Err: err}
	}
	return nil
}

func (b *base) checkStatus(resp *http.Response, path string) error {
	switch {
	case resp.StatusCode < 400:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: b.resource, Key: strings.TrimPrefix(path, "/")}
	case resp.StatusCode < 500:
		return &RejectedError{
			Resource:   b.resource,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	default:
		return &TransportError{
			Resource: b.resource,
			Err:      &statusError{code: resp.StatusCode},
		}
	}
}

// readErrorMessage pulls a human-readable message out of a 4xx body when the
// server sent one. Bodies are small; an unreadable body just means no message.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &structured); err == nil {
		if structured.Message != "" {
			return structured.Message
		}
		if structured.Error != "" {
			return structured.Error
		}
	}
	return strings.TrimSpace(string(data))
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "server returned status " + http.StatusText(e.code)
}

// Clients bundles one accessor per remote resource. Construct it once and
// pass it by reference; the accessors are safe for concurrent use.
type Clients struct {
	Flights  *FlightsClient
	Bookings *BookingsClient
	Airports *AirportsClient
}

func New(cfg Config) *Clients {
	return &Clients{
		Flights:  NewFlightsClient(cfg),
		Bookings: NewBookingsClient(cfg),
		Airports: NewAirportsClient(cfg),
	}
}

func formatID(id int64) string {
	return "/" + strconv.FormatInt(id, 10)
}

// searchDateLayout matches the zoneless ISO format the search endpoint parses.
const searchDateLayout = "2006-01-02T15:04:05"

func formatSearchDate(t time.Time) string {
	return t.Format(searchDateLayout)
}
