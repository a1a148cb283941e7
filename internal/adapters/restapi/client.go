// Package restapi implements the remote ports over HTTP against the
// bookkeeping REST API. All collection endpoints follow the
// {base}/api/{resource}/ trailing-slash convention, item endpoints append
// {id}/, and authenticated calls carry a bearer token.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rentbooks/rentbooks/internal/apperrors"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// Client is the shared HTTP plumbing underneath every remote adapter.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient builds a Client for the API at baseURL. No request timeout is
// set; callers control cancellation through their context.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		logger:  logger,
	}
}

func (c *Client) endpoint(resource string) string {
	return c.baseURL + "/api/" + resource + "/"
}

func (c *Client) itemEndpoint(resource string, id int64) string {
	return c.endpoint(resource) + strconv.FormatInt(id, 10) + "/"
}

// do issues one JSON request. A transport failure is returned as-is; a
// response outside the 2xx range becomes an apperrors.RemoteError. When out
// is non-nil and the response has a body, it is decoded into out.
func (c *Client) do(ctx context.Context, method, rawURL, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("API call failed",
			slog.String("method", method),
			slog.String("url", rawURL),
			slog.Int("status", resp.StatusCode),
		)
		return &apperrors.RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

func propertyQuery(propertyID int64) url.Values {
	q := url.Values{}
	q.Set("property_id", strconv.FormatInt(propertyID, 10))
	return q
}

// collection is the shared shape of one REST resource collection. The named
// adapters embed it and add the scoping each resource needs.
type collection[T any, P any] struct {
	c    *Client
	name string
}

func (r collection[T, P]) list(ctx context.Context, token string, query url.Values) ([]T, error) {
	u := r.c.endpoint(r.name)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var out []T
	if err := r.c.do(ctx, http.MethodGet, u, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r collection[T, P]) create(ctx context.Context, token string, query url.Values, payload P) (*T, error) {
	u := r.c.endpoint(r.name)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var out T
	if err := r.c.do(ctx, http.MethodPost, u, token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r collection[T, P]) update(ctx context.Context, token string, id int64, payload P) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, r.c.itemEndpoint(r.name, id), token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// softDelete marks the record deleted via PUT, never HTTP DELETE.
func (r collection[T, P]) softDelete(ctx context.Context, token string, id int64) error {
	return r.c.do(ctx, http.MethodPut, r.c.itemEndpoint(r.name, id), token,
		dto.SoftDeletePayload{IsDeleted: true}, nil)
}
