// Package moodapi provides a client for the MoodTune prediction service.
package moodapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	userAgent = "moodtune/1.0 (https://github.com/llehouerou/moodtune)"
)

// ErrEmptyText is returned by Predict for blank input.
var ErrEmptyText = errors.New("mood text is empty")

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("service returned %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("service returned %d", e.Code)
}

// Client is a prediction service client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict analyses text and returns the mood with song recommendations.
func (c *Client) Predict(ctx context.Context, text, model string) (*Prediction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if model == "" {
		model = ModelSimple
	}

	var result Prediction
	if err := c.post(ctx, "/predict", predictRequest{Text: text, Model: model}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResolveAudio asks the service for a full-length audio stream of a song.
func (c *Client) ResolveAudio(ctx context.Context, title, artist string) (*AudioResolution, error) {
	var result AudioResolution
	if err := c.post(ctx, "/get_youtube_audio", songRequest{Title: title, Artist: artist}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks that the service is up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var result Health
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError builds a StatusError, keeping FastAPI's detail message.
func statusError(resp *http.Response) error {
	e := &StatusError{Code: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && eb.Detail != "" {
		e.Detail = eb.Detail
	} else {
		e.Detail = strings.TrimSpace(string(body))
	}
	return e
}
