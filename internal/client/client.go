// Package client talks to the tracker's JSON API and keeps the local,
// id-keyed copies that views render from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/agenda"
	"github.com/justsurfingit/job-search-tracker/internal/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/api/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateApplication sends a partial update. A nil value clears the field.
func (c *Client) UpdateApplication(ctx context.Context, id string, changes map[string]any) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPut, "/api/applications/"+url.PathEscape(id), changes, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) ListTasks(ctx context.Context, query url.Values) ([]agenda.View, error) {
	path := "/api/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var items []agenda.View
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateTask(ctx context.Context, fields map[string]any) (*agenda.View, error) {
	var item agenda.View
	if err := c.do(ctx, http.MethodPost, "/api/tasks", fields, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, changes map[string]any) (*agenda.View, error) {
	var item agenda.View
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), changes, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}
