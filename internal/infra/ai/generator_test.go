package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ai-code-reviewer/internal/config"
)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.AI
		wantName string
		wantErr  bool
	}{
		{name: "gemini", cfg: config.AI{Provider: "gemini", GeminiKey: "k", Model: "gemini-2.0-flash"}, wantName: "gemini"},
		{name: "empty provider defaults to gemini", cfg: config.AI{GeminiKey: "k"}, wantName: "gemini"},
		{name: "openai", cfg: config.AI{Provider: "openai", OpenAIKey: "k", Model: "gpt-4o-mini"}, wantName: "openai"},
		{name: "gemini missing key", cfg: config.AI{Provider: "gemini"}, wantErr: true},
		{name: "openai missing key", cfg: config.AI{Provider: "openai", GeminiKey: "k"}, wantErr: true},
		{name: "unknown", cfg: config.AI{Provider: "bard", GeminiKey: "k"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, gen.Name())
		})
	}
}
