// Package llm wraps an OpenAI-compatible chat completion endpoint.
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

type (
	Config struct {
		Endpoint    string
		Model       string
		APIKey      string
		Temperature float64
	}

	Client struct {
		client      *openai.Client
		model       string
		temperature float32
		log         *slog.Logger
	}
)

func NewClient(conf Config, log *slog.Logger) (*Client, error) {
	if conf.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if conf.Model == "" {
		return nil, errors.New("model is required")
	}

	clientConfig := openai.DefaultConfig(conf.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(conf.Endpoint, "/")

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       conf.Model,
		temperature: float32(conf.Temperature),
		log:         log,
	}, nil
}

// GenerateResponse performs a single chat completion and returns the message text.
func (c *Client) GenerateResponse(ctx context.Context, prompt, systemMessage string) (string, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}

	c.log.DebugContext(ctx, "chat completion finished",
		"model", c.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed", time.Since(start),
	)

	return resp.Choices[0].Message.Content, nil
}
