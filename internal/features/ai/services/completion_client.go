package ai_services

import (
	"context"
	"errors"
	"fmt"

	"taskhive/internal/config"

	"github.com/sashabaranov/go-openai"
)

// CompletionClient is the opaque text-completion dependency. Anything
// speaking the OpenAI chat API can back it.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

type openAIClient struct {
	client *openai.Client
	model  string
}

func NewCompletionClient() CompletionClient {
	envs := config.GetEnv()

	clientConfig := openai.DefaultConfig(envs.AIApiKey)
	if envs.AIBaseURL != "" {
		clientConfig.BaseURL = envs.AIBaseURL
	}

	return &openAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  envs.AIModel,
	}
}

func (c *openAIClient) Complete(
	ctx context.Context,
	systemPrompt string,
	userPrompt string,
) (string, error) {
	if config.GetEnv().AIApiKey == "" {
		return "", errors.New("completion provider is not configured")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
