/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package chat is the client for the external conversation collaborator, an
// Anthropic-style messages API. The core composes the system prompt and
// forwards the user message with a window of recent history; failures are
// classified so callers can pick a user-facing fallback, never retried here.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/logging"
)

const (
	messagesPath   = "/v1/messages"
	apiVersion     = "2023-06-01"
	requestTimeout = 60 * time.Second

	// Ping sends a minimal one-shot greeting to probe availability
	pingMessage   = "안녕하세요"
	pingMaxTokens = 10
)

// Conversation roles forwarded to the collaborator. Anything else in the
// history is dropped.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request is one chat exchange: the composed system prompt, the user's
// message, and the caller-supplied conversation history.
type Request struct {
	System      string
	UserMessage string
	History     []global.ChatTurn
}

// Client sends chat requests to the conversation collaborator.
type Client interface {
	// Send returns the collaborator's text completion for the request
	Send(ctx context.Context, req Request) (string, error)
	// Ping reports whether the collaborator currently answers
	Ping(ctx context.Context) bool
}

// TrimHistory keeps the most recent window turns, then drops roles other
// than user and assistant. The window applies before the role filter: the
// contract is "the most recent N turns", not "the most recent N usable ones".
func TrimHistory(history []global.ChatTurn, window int) []global.ChatTurn {
	if window <= 0 {
		window = global.DefaultHistoryWindow
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}

	trimmed := make([]global.ChatTurn, 0, len(history))
	for _, turn := range history {
		if turn.Role == RoleUser || turn.Role == RoleAssistant {
			trimmed = append(trimmed, turn)
		}
	}
	return trimmed
}

// HTTPClient talks to an Anthropic-style messages endpoint.
type HTTPClient struct {
	endpoint      string
	apiKey        string
	model         string
	maxTokens     int
	temperature   float64
	historyWindow int
	httpClient    *http.Client
	logger        *logging.Logger
}

// Option is a functional option for configuring HTTPClient
type Option func(*HTTPClient)

// WithEndpoint sets the API base URL
func WithEndpoint(endpoint string) Option {
	return func(c *HTTPClient) {
		c.endpoint = endpoint
	}
}

// WithAPIKey sets the API key sent in the x-api-key header
func WithAPIKey(key string) Option {
	return func(c *HTTPClient) {
		c.apiKey = key
	}
}

// WithModel sets the model requested from the collaborator
func WithModel(model string) Option {
	return func(c *HTTPClient) {
		c.model = model
	}
}

// WithMaxTokens sets the completion token budget per request
func WithMaxTokens(n int) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) Option {
	return func(c *HTTPClient) {
		if t > 0 {
			c.temperature = t
		}
	}
}

// WithHistoryWindow sets how many recent turns are forwarded per request.
// Values outside the accepted range fall back to the default.
func WithHistoryWindow(n int) Option {
	return func(c *HTTPClient) {
		validated, err := global.ValidateHistoryWindow(n)
		if err != nil {
			validated = global.DefaultHistoryWindow
		}
		c.historyWindow = validated
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger for the client
func WithLogger(logger *logging.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// NewHTTPClient creates a chat client. An API key is required; everything
// else has defaults.
func NewHTTPClient(opts ...Option) (*HTTPClient, error) {
	c := &HTTPClient{
		endpoint:      global.DefaultChatEndpoint,
		model:         global.DefaultChatModel,
		maxTokens:     global.DefaultChatMaxTokens,
		temperature:   global.DefaultChatTemperature,
		historyWindow: global.DefaultHistoryWindow,
		httpClient:    &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		return nil, &global.ConfigError{Key: "ANTHROPIC_API_KEY", Err: fmt.Errorf("chat collaborator requires an API key")}
	}
	c.endpoint = strings.TrimSuffix(c.endpoint, "/")

	return c, nil
}

// messagesRequest is the wire shape of the messages API request body.
type messagesRequest struct {
	Model       string            `json:"model"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
	System      string            `json:"system,omitempty"`
	Messages    []global.ChatTurn `json:"messages"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Send forwards the request with the trimmed history window appended by the
// user message, and returns the first text block of the completion.
func (c *HTTPClient) Send(ctx context.Context, req Request) (string, error) {
	messages := TrimHistory(req.History, c.historyWindow)
	messages = append(messages, global.ChatTurn{Role: RoleUser, Content: req.UserMessage})

	body := messagesRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		System:      req.System,
		Messages:    messages,
	}

	if c.logger != nil {
		c.logger.Debugf("Chat request: %d message(s), system prompt %d bytes", len(messages), len(req.System))
	}

	return c.post(ctx, body)
}

// Ping sends a minimal one-shot message to check the collaborator answers.
func (c *HTTPClient) Ping(ctx context.Context) bool {
	body := messagesRequest{
		Model:     c.model,
		MaxTokens: pingMaxTokens,
		Messages:  []global.ChatTurn{{Role: RoleUser, Content: pingMessage}},
	}

	_, err := c.post(ctx, body)
	if err != nil && c.logger != nil {
		c.logger.Debugf("Chat ping failed: %v", err)
	}
	return err == nil
}

func (c *HTTPClient) post(ctx context.Context, body messagesRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+messagesPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", serviceErr(global.ServiceErrorTransient, fmt.Errorf("chat request failed: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", serviceErr(global.ServiceErrorTransient, fmt.Errorf("failed to read chat response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		kind := classifyStatus(resp.StatusCode)
		return "", serviceErr(kind, fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", serviceErr(global.ServiceErrorTransient, fmt.Errorf("failed to parse chat response: %w", err))
	}
	if parsed.Error != nil {
		return "", serviceErr(global.ServiceErrorTransient, fmt.Errorf("chat API error: %s", parsed.Error.Message))
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return "", serviceErr(global.ServiceErrorTransient, fmt.Errorf("chat API returned no content"))
	}

	return parsed.Content[0].Text, nil
}

// classifyStatus maps HTTP status codes onto the service error taxonomy:
// 401/403 auth, 429 quota, everything else transient.
func classifyStatus(status int) global.ServiceErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return global.ServiceErrorAuth
	case http.StatusTooManyRequests:
		return global.ServiceErrorQuota
	default:
		return global.ServiceErrorTransient
	}
}

func serviceErr(kind global.ServiceErrorKind, err error) error {
	return &global.ServiceError{Service: "chat", Kind: kind, Err: err}
}
