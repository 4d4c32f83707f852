package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/lavishq/docpilot/internal/common"
)

// LangChainProvider serves the same contract through langchaingo, for
// deployments that already standardize on its model wrappers.
type LangChainProvider struct {
	model llms.Model
	name  string
}

func NewLangChainProvider() (*LangChainProvider, error) {
	chatModel := os.Getenv("OPENAI_CHAT_MODEL")
	if chatModel == "" {
		chatModel = "gpt-4o"
	}
	model, err := lcopenai.New(lcopenai.WithModel(chatModel))
	if err != nil {
		return nil, fmt.Errorf("init langchain model: %w", err)
	}
	common.Logger().Info("llm: langchain provider configured", "chat_model", chatModel)
	return &LangChainProvider{model: model, name: "langchain"}, nil
}

func (l *LangChainProvider) chat(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}
	var opts []llms.CallOption
	if jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}
	resp, err := l.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		common.Logger().Error("llm: langchain completion failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Content, nil
}

func (l *LangChainProvider) Extract(ctx context.Context, text string, fields []string) (map[string]interface{}, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to extract")
	}
	raw, err := l.chat(ctx, extractionSystemPrompt, extractionUserPrompt(text, fields), true)
	if err != nil {
		return nil, err
	}
	return parseExtraction(raw)
}

func (l *LangChainProvider) Respond(ctx context.Context, text string) (Answer, error) {
	system := "Bạn là trợ lý bán hàng của Lavis. Trả lời ngắn gọn, hữu ích, bằng tiếng Việt."
	reply, err := l.chat(ctx, system, text, false)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: reply}, nil
}

func (l *LangChainProvider) Name() string {
	return l.name
}
