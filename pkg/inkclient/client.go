// Package inkclient is a typed HTTP client for the inkwell API.
package inkclient

import (
	"context"
	"fmt"

	"resty.dev/v3"
)

// APIError is returned for non-2xx responses.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Kind, e.Message)
}

type errorResponse struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	client *resty.Client
	token  string
}

func NewClient(baseURL string, config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig
	}

	client := resty.NewWithTransportSettings(config.TransportSettings).
		SetBaseURL(baseURL)

	for _, m := range config.RequestMiddlewares {
		client.AddRequestMiddleware(m)
	}
	for _, m := range config.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	return &Client{
		client: client,
	}
}

// WithToken returns a client that authenticates its requests with token. Both
// clients share the connection pool.
func (c *Client) WithToken(token string) *Client {
	return &Client{client: c.client, token: token}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	r := c.client.R().WithContext(ctx).SetError(&errorResponse{})
	if c.token != "" {
		r.SetAuthToken(c.token)
	}
	return r
}

func do[T any](res *resty.Response, err error) (T, error) {
	var zero T

	if err != nil {
		return zero, err
	}

	if res.IsError() {
		apiErr := &APIError{Status: res.StatusCode()}
		if body, ok := res.Error().(*errorResponse); ok {
			apiErr.Kind = body.Error.Kind
			apiErr.Message = body.Error.Message
		}
		return zero, apiErr
	}

	result, ok := res.Result().(*T)
	if !ok {
		return zero, fmt.Errorf("unexpected response body for %s", res.Request.URL)
	}

	return *result, nil
}
