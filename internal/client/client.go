// Package client talks to the chat proxy over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rehnuma-chat/internal/models"
)

// ErrNoResponse is returned when the proxy answers without displayable text.
var ErrNoResponse = errors.New("reply carried no response text")

// ServerError is a failure the proxy handled and described itself, such as
// a missing API key or a Gemini error.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New uses http.DefaultClient when httpClient is nil; no timeout is added on
// top of whatever the given client carries.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Chat sends one message with its history window. A reply flagged as an
// error comes back as *ServerError alongside the decoded body.
func (c *Client) Chat(ctx context.Context, message string, history []models.Turn) (*models.ChatResponse, error) {
	if history == nil {
		history = []models.Turn{}
	}
	body, err := json.Marshal(models.ChatRequest{Message: message, History: history})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode chat reply (status %d): %w", resp.StatusCode, err)
	}
	if out.Error || resp.StatusCode != http.StatusOK {
		return &out, &ServerError{Status: resp.StatusCode, Message: out.Response}
	}
	if out.Response == "" {
		return &out, ErrNoResponse
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.getJSON(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Test asks the proxy for one live round-trip to Gemini.
func (c *Client) Test(ctx context.Context) (*models.TestResponse, error) {
	var out models.TestResponse
	if err := c.getJSON(ctx, "/api/test", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s reply: %w", path, err)
	}
	return nil
}
