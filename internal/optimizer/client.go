package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"iso_dispatch/internal/dispatch"
)

// Client talks to the external route optimizer. The solver owns path
// finding and vehicle assignment; this service only consumes its answer.
type Client struct {
	baseURL string
	session *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: &http.Client{Timeout: 60 * time.Second},
	}
}

// AvoidPoint is the snapped incident position forwarded to the solver.
type AvoidPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type optimizeRequest struct {
	AvoidPoint *AvoidPoint `json:"avoid_point,omitempty"`
}

type optimizeResponse struct {
	Routes []dispatch.RawRoute `json:"routes"`
}

// Optimize requests a fresh fleet solution. When avoid is nil the result is
// the no-incident form the caller may capture as a baseline. A failed call
// returns an error and the caller keeps its prior plan untouched.
func (c *Client) Optimize(ctx context.Context, avoid *AvoidPoint) ([]dispatch.RawRoute, error) {
	payload, err := json.Marshal(optimizeRequest{AvoidPoint: avoid})
	if err != nil {
		return nil, fmt.Errorf("optimize: encode request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, c.baseURL+"/optimize", bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	defer resp.Body.Close()

	var out optimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("optimize: decode response: %w", err)
	}
	if len(out.Routes) == 0 {
		return nil, errors.New("optimize: solver returned no routes")
	}
	return out.Routes, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("solver returned %d: %s", e.Code, e.Body)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (c *Client) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
