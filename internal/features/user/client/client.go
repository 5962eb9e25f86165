package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"user-admin-console/internal/common/envelope"
	"user-admin-console/internal/common/logger"
	"user-admin-console/internal/common/middleware"
	"user-admin-console/internal/features/user/models"
)

const (
	usersPath = "/api/users"
	statsPath = "/api/users/stats"

	maxBodyBytes = 4 << 20
)

// Client calls the remote user API. Every response is normalized into an
// envelope.Envelope; transport failures come back as *envelope.RequestError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxBody    int64
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBody: maxBodyBytes,
	}
}

func (c *Client) List(ctx context.Context, q models.ListQuery) (envelope.Envelope[models.PagedResponse[models.User]], error) {
	return do[models.PagedResponse[models.User]](ctx, c, http.MethodGet, usersPath+"?"+q.Values().Encode(), nil)
}

func (c *Client) Stats(ctx context.Context) (envelope.Envelope[models.UserStats], error) {
	return do[models.UserStats](ctx, c, http.MethodGet, statsPath, nil)
}

func (c *Client) Create(ctx context.Context, req models.CreateUserRequest) (envelope.Envelope[models.User], error) {
	return do[models.User](ctx, c, http.MethodPost, usersPath, req)
}

// Delete removes the user; soft only marks it inactive.
func (c *Client) Delete(ctx context.Context, id string, soft bool) (envelope.Envelope[string], error) {
	path := fmt.Sprintf("%s/%s?soft=%s", usersPath, url.PathEscape(id), strconv.FormatBool(soft))
	return do[string](ctx, c, http.MethodDelete, path, nil)
}

func do[T any](ctx context.Context, c *Client, method, path string, body interface{}) (envelope.Envelope[T], error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return envelope.Envelope[T]{}, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope.Envelope[T]{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("User API unreachable")
		return envelope.Envelope[T]{}, envelope.Transport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return envelope.Envelope[T]{}, envelope.Transport(err)
	}
	if int64(len(raw)) > c.maxBody {
		logger.Warn().Str("method", method).Str("path", path).Int64("limit", c.maxBody).Msg("User API response too large")
		return envelope.Envelope[T]{}, &envelope.RequestError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("response exceeds %d bytes", c.maxBody),
		}
	}

	logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("User API call")

	return envelope.Normalize[T](resp.StatusCode, resp.Header.Get("Content-Type"), raw)
}
