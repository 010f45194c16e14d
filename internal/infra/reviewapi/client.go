// Package reviewapi is an HTTP client for a running review server.
package reviewapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bryanwahyu/ai-code-reviewer/internal/domain/review"
)

const reviewPath = "/ai/get-review"

type Client struct {
	http *resty.Client
}

// New returns a client for the server at baseURL. Timeout 0 means wait forever,
// which is how the server treats the provider too.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "text/plain")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c}
}

// Review posts code and maps the server's status codes back onto domain errors.
func (c *Client) Review(ctx context.Context, code string) (review.Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(review.Request{Code: code}).
		Post(reviewPath)
	if err != nil {
		return review.Result{}, fmt.Errorf("request review: %w", err)
	}

	body := string(resp.Body())
	switch resp.StatusCode() {
	case http.StatusOK:
		return review.Result{Text: body, Refused: body == review.RefusalMessage}, nil
	case http.StatusBadRequest:
		return review.Result{}, review.ErrCodeRequired
	case http.StatusInternalServerError:
		return review.Result{}, review.ErrGenerationFailed
	default:
		return review.Result{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), strings.TrimSpace(body))
	}
}
