package infinitode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/riskibarqy/tdi-leaderboards/internal/platform/resilience"
)

const maxResponseBytes = 6 << 20

// postAPI sends a form-encoded call to the JSON API and returns the raw body.
func (c *Client) postAPI(ctx context.Context, action string, form url.Values) ([]byte, error) {
	query := url.Values{}
	query.Set("m", "api")
	query.Set("a", action)
	query.Set("apiv", apiVersion)
	query.Set("g", gameID)
	query.Set("v", gameVersion)
	fullURL := c.apiURL + "?" + query.Encode()
	body := form.Encode()

	return c.send(ctx, action, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("content-type", "application/x-www-form-urlencoded")
		req.Header.Set("accept", "application/json")
		return req, nil
	})
}

// getPage fetches one XDX markup page.
func (c *Client) getPage(ctx context.Context, page string, query url.Values) ([]byte, error) {
	params := url.Values{}
	for key, values := range query {
		params[key] = values
	}
	params.Set("url", page)
	fullURL := c.xdxURL + "?" + params.Encode()

	return c.send(ctx, page, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("accept", "text/html,application/xml")
		return req, nil
	})
}

func (c *Client) send(ctx context.Context, call string, build func() (*http.Request, error)) ([]byte, error) {
	if c.closed.Load() {
		return nil, apiErrorf("client is closed")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: wait for rate limit: %w", ErrAPI, err)
		}
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, call, build)
		return reqErr
	}, func(error) bool {
		return ctx.Err() == nil
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "infinitode circuit breaker rejected request", "call", call, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: service is temporarily unavailable: %w", ErrAPI, err)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, call string, build func() (*http.Request, error)) ([]byte, error) {
	req, err := build()
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrAPI, err)
	}

	c.logger.DebugContext(ctx, "infinitode request", "call", call, "method", req.Method, "url", req.URL.String())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "infinitode request failed", "call", call, "error", err)
		return nil, fmt.Errorf("%w: send request: %w", ErrAPI, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", ErrAPI, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "infinitode request rejected", "call", call, "status", resp.StatusCode)
		return nil, apiErrorf("call=%s status=%d body=%s", call, resp.StatusCode, abbreviateBody(raw))
	}
	return raw, nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
