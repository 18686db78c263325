package summarize

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// local OpenAI-compatible servers ignore the key but the client wants one
const placeholderAPIKey = "not-needed"

const defaultOpenAIModel = "gpt-3.5-turbo"

// implements Summarizer using OpenAI Chat Completions
type OpenAISummarizer struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAISummarizer(apiKey string, opts Options) (*OpenAISummarizer, error) {
	if apiKey == "" {
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("API key is required")
		}
		apiKey = placeholderAPIKey
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAISummarizer{
		client:  openai.NewClient(reqOpts...),
		model:   model,
		options: opts,
	}, nil
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, req Request) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(BuildPrompt(req.Text)))

	params := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       s.model,
		Temperature: openai.Float(s.options.temperature()),
	}
	if s.options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(s.options.MaxTokens))
	}

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	responseText := completion.Choices[0].Message.Content
	if responseText == "" {
		return "", fmt.Errorf("no text in OpenAI response")
	}

	return responseText, nil
}
