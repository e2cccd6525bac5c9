package ai

import (
	"errors"
	"strings"
	"testing"
)

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	registry := NewProviderRegistry()
	RegisterOpenAI(registry)

	t.Run("known provider with config", func(t *testing.T) {
		t.Parallel()
		provider, err := registry.GetProvider("openai", map[string]string{"api_key": "sk-test"})
		if err != nil {
			t.Fatalf("GetProvider returned error: %v", err)
		}
		if provider == nil {
			t.Fatal("expected a provider")
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Parallel()
		_, err := registry.GetProvider("openai", map[string]string{})
		if err == nil || !strings.Contains(err.Error(), "api_key") {
			t.Errorf("error = %v, want api_key requirement", err)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		_, err := registry.GetProvider("anthropic", nil)
		var notFound *ErrProviderNotFound
		if !errors.As(err, &notFound) {
			t.Fatalf("error = %v, want ErrProviderNotFound", err)
		}
		if notFound.Name != "anthropic" {
			t.Errorf("Name = %q, want anthropic", notFound.Name)
		}
	})
}

func TestNewOpenAIProvider_Defaults(t *testing.T) {
	t.Parallel()

	provider := NewOpenAIProvider("sk-test", "")
	if provider.model != DefaultOpenAIModel {
		t.Errorf("model = %q, want %q", provider.model, DefaultOpenAIModel)
	}
}

func TestSanitizePrompt(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		if got := SanitizePrompt("", true); got != "" {
			t.Errorf("SanitizePrompt(\"\") = %q", got)
		}
	})

	t.Run("strips control characters", func(t *testing.T) {
		t.Parallel()
		got := SanitizePrompt("hello\x1b[31mworld\x00", true)
		if got != "hello[31mworld" {
			t.Errorf("SanitizePrompt = %q", got)
		}
	})

	t.Run("truncates preview mode", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("a", MaxPreviewLength+50)
		got := SanitizePrompt(long, false)
		if len(got) != MaxPreviewLength+3 || !strings.HasSuffix(got, "...") {
			t.Errorf("len = %d, want %d with ellipsis", len(got), MaxPreviewLength+3)
		}
	})

	t.Run("keeps newlines", func(t *testing.T) {
		t.Parallel()
		if got := SanitizeResponse("line one\nline two", true); got != "line one\nline two" {
			t.Errorf("SanitizeResponse = %q", got)
		}
	})
}
