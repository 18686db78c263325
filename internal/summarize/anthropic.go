package summarize

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Messages API requires an explicit cap
const defaultAnthropicMaxTokens = 4096

// implements Summarizer using Anthropic Claude
type AnthropicSummarizer struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicSummarizer(apiKey string, opts Options) (*AnthropicSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicSummarizer{
		client:  anthropic.NewClient(reqOpts...),
		model:   model,
		options: opts,
	}, nil
}

func (s *AnthropicSummarizer) Summarize(ctx context.Context, req Request) (string, error) {
	maxTokens := int64(defaultAnthropicMaxTokens)
	if s.options.MaxTokens > 0 {
		maxTokens = int64(s.options.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:       s.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(s.options.temperature()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(BuildPrompt(req.Text)),
			),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	message, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	if message == nil || len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("no text in Anthropic response")
	}

	return responseText, nil
}
