package providers

import (
	"net/http/httptest"
	"testing"

	"github.com/c360studio/autocoder/pkg/llm"
)

func TestOpenAIBuildURLDefaultsToOpenAIHost(t *testing.T) {
	p := &OpenAIProvider{}
	if got := p.BuildURL(""); got != "https://api.openai.com/v1/chat/completions" {
		t.Errorf("BuildURL(\"\") = %q", got)
	}
}

func TestOpenAISetHeadersIncludesOpenRouterExtras(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_SITE_URL", "https://example.com")
	t.Setenv("OPENROUTER_SITE_NAME", "Example")

	p := &OpenAIProvider{}
	req := httptest.NewRequest("POST", "http://example.com", nil)
	p.SetHeaders(req)

	if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
		t.Errorf("Authorization header = %q", got)
	}
	if got := req.Header.Get("HTTP-Referer"); got != "https://example.com" {
		t.Errorf("HTTP-Referer header = %q", got)
	}
	if got := req.Header.Get("X-Title"); got != "Example" {
		t.Errorf("X-Title header = %q", got)
	}
}

func TestOpenAIInheritsOllamaRequestFormat(t *testing.T) {
	p := &OpenAIProvider{}
	body, err := p.BuildRequestBody("gpt-4o", []llm.Message{{Role: "user", Content: "hi"}}, nil, 0)
	if err != nil {
		t.Fatalf("BuildRequestBody failed: %v", err)
	}
	if len(body) == 0 {
		t.Error("expected a non-empty request body reused from the embedded OllamaProvider")
	}
}

func TestOpenAIRegisteredWithProviderRegistry(t *testing.T) {
	if llm.GetProvider("openai") == nil {
		t.Fatal("expected the openai provider to self-register via init()")
	}
}
