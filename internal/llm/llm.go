package llm

import (
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/lavishq/docpilot/internal/common"
	"github.com/lavishq/docpilot/internal/llm/providers"
)

type Provider = providers.Provider

type Answer = providers.Answer

type Source = providers.Source

// NewProvider selects a backend from the environment. OPENAI_API_KEY picks
// the OpenAI client (or langchaingo when DOCPILOT_LLM_PROVIDER=langchain);
// a missing credential falls back to the local stub with a logged warning.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
		return providers.NewLocalProvider()
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("DOCPILOT_LLM_PROVIDER")), "langchain") {
		provider, err := providers.NewLangChainProvider()
		if err != nil {
			logger.Error("llm: langchain provider init failed; falling back to OpenAI", "error", err)
		} else {
			logger.Info("llm: langchain provider selected")
			return provider
		}
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	} else {
		logger.Debug("llm: using default OpenAI endpoint")
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI provider selected")
	return providers.NewOpenAIProvider(client)
}
