package providers

import (
	"context"
	"fmt"
	"os"

	openai "github.com/openai/openai-go/v2"

	"github.com/lavishq/docpilot/internal/common"
)

type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(client openai.Client) *OpenAIProvider {
	model := os.Getenv("OPENAI_CHAT_MODEL")
	if model == "" {
		model = "gpt-4o"
	}
	logger := common.Logger()
	logger.Info("llm: OpenAI provider configured", "chat_model", model)
	return &OpenAIProvider{client: client, model: model}
}

func (o *OpenAIProvider) chat(ctx context.Context, system, user string) (string, error) {
	logger := common.Logger()
	logger.Debug("llm: sending chat completion request", "model", o.model)
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		logger.Error("llm: chat completion failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	logger.Debug("llm: chat completion succeeded")
	return completion.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Extract(ctx context.Context, text string, fields []string) (map[string]interface{}, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to extract")
	}
	raw, err := o.chat(ctx, extractionSystemPrompt, extractionUserPrompt(text, fields))
	if err != nil {
		return nil, err
	}
	values, err := parseExtraction(raw)
	if err != nil {
		common.Logger().Warn("llm: extraction response unusable", "error", err)
		return nil, err
	}
	return values, nil
}

func (o *OpenAIProvider) Respond(ctx context.Context, text string) (Answer, error) {
	system := "Bạn là trợ lý bán hàng của Lavis. Trả lời ngắn gọn, hữu ích, bằng tiếng Việt."
	reply, err := o.chat(ctx, system, text)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: reply}, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
