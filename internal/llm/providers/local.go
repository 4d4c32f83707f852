package providers

import (
	"context"
	"fmt"
	"strings"
)

// LocalProvider is a deterministic offline stub used when no API key is
// configured and in tests.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Extract(ctx context.Context, text string, fields []string) (map[string]interface{}, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to extract")
	}
	values := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		values[field] = strings.TrimSpace(text)
	}
	return values, nil
}

func (l *LocalProvider) Respond(ctx context.Context, text string) (Answer, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Answer{}, fmt.Errorf("no input provided")
	}
	return Answer{Text: "[local-stub] " + trimmed}, nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
