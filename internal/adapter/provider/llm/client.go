// Package llm talks to an OpenAI-compatible chat endpoint. The default
// deployment points it at a local Ollama server's /v1 API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Chat roles.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Message is one role-tagged chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options are the sampling parameters sent with a chat request.
type Options struct {
	Temperature float64
	TopP        float64
}

// Config holds configuration for creating a Client.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client provides access to an OpenAI-compatible endpoint.
type Client struct {
	client  *openai.Client
	baseURL string
	log     *slog.Logger
}

// NewClient creates a client for cfg.BaseURL. The API key is optional for
// local endpoints.
func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("llm: base url is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		baseURL: clientConfig.BaseURL,
		log:     log.With("adapter", "llm"),
	}, nil
}

// ListModels returns the ids of the models the endpoint serves.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("llm: list models: %w", err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// Chat sends the conversation and returns the first choice's content.
func (c *Client) Chat(ctx context.Context, model string, messages []Message, opts Options) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: float32(opts.Temperature),
		TopP:        float32(opts.TopP),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	c.log.DebugContext(ctx, "llm request",
		slog.String("model", model),
		slog.Int("messages", len(messages)),
	)
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.WarnContext(ctx, "llm request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("llm: chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: chat: no choices in response")
	}

	c.log.InfoContext(ctx, "llm request completed",
		slog.String("model", model),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp.Choices[0].Message.Content, nil
}
