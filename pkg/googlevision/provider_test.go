package googlevision

import (
	"os"
	"strings"
	"testing"

	"github.com/classtrack/gradescan/pkg/providers"
)

func TestProvider_Name(t *testing.T) {
	provider := New()
	if got := provider.Name(); got != "vision" {
		t.Errorf("Name() = %q, want %q", got, "vision")
	}
}

func TestProvider_ValidateConfig(t *testing.T) {
	provider := New()

	original := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	defer os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", original)

	tests := []struct {
		name          string
		credentials   string
		expectError   bool
		errorContains string
	}{
		{
			name:        "credentials file configured",
			credentials: "/tmp/service-account.json",
			expectError: false,
		},
		{
			name:          "missing credentials",
			credentials:   "",
			expectError:   true,
			errorContains: "GOOGLE_APPLICATION_CREDENTIALS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.credentials == "" {
				os.Unsetenv("GOOGLE_APPLICATION_CREDENTIALS")
			} else {
				os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", tt.credentials)
			}

			err := provider.ValidateConfig(providers.Config{Provider: "vision"})

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
