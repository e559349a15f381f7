package utils

import (
	"context"
	openai "github.com/sashabaranov/go-openai"
	"os"
)

type ModerationClientInterface interface {
	// IsFlagged reports whether the text violates content policy.
	IsFlagged(ctx context.Context, text string) (bool, error)
}

type OpenAIModerationClient struct {
	client *openai.Client
}

func NewOpenAIModerationClient() *OpenAIModerationClient {
	return &OpenAIModerationClient{
		client: openai.NewClient(os.Getenv("OPENAI_API_KEY")),
	}
}

func (m *OpenAIModerationClient) IsFlagged(ctx context.Context, text string) (bool, error) {
	resp, err := m.client.Moderations(ctx, openai.ModerationRequest{
		Input: text,
		Model: openai.ModerationTextStable,
	})
	if err != nil {
		return false, err
	}

	for _, result := range resp.Results {
		if result.Flagged {
			return true, nil
		}
	}
	return false, nil
}
