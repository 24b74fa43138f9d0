package openai

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/classtrack/gradescan/pkg/providers"
)

func TestProvider_Name(t *testing.T) {
	provider := New()
	if got := provider.Name(); got != "openai" {
		t.Errorf("Name() = %q, want %q", got, "openai")
	}
}

func TestProvider_ValidateConfig(t *testing.T) {
	provider := New()

	originalKey := os.Getenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", originalKey)

	tests := []struct {
		name          string
		apiKey        string
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid config with API key",
			apiKey:      "test-api-key",
			expectError: false,
		},
		{
			name:          "missing API key",
			apiKey:        "",
			expectError:   true,
			errorContains: "OPENAI_API_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.apiKey == "" {
				os.Unsetenv("OPENAI_API_KEY")
			} else {
				os.Setenv("OPENAI_API_KEY", tt.apiKey)
			}

			err := provider.ValidateConfig(providers.Config{Provider: "openai", Model: "gpt-4o"})

			if tt.expectError {
				if err == nil {
					t.Error("expected error but got none")
				} else if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorContains)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResponseParsing(t *testing.T) {
	raw := `{
		"choices": [
			{"message": {"content": "Row,Score,Status\n1,8.5,\n2,,Absent"}}
		],
		"usage": {"prompt_tokens": 900, "completion_tokens": 30, "total_tokens": 930}
	}`

	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp.Choices) != 1 {
		t.Fatalf("unexpected choices: %+v", resp.Choices)
	}
	if resp.Choices[0].Message.Content != "Row,Score,Status\n1,8.5,\n2,,Absent" {
		t.Errorf("content = %q", resp.Choices[0].Message.Content)
	}
	if resp.Usage.TotalTokens != 930 {
		t.Errorf("TotalTokens = %d, want 930", resp.Usage.TotalTokens)
	}
}
