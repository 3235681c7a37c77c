package llm

import (
	"net/http"
	"testing"
)

type fakeProvider struct{ name string }

func (f *fakeProvider) Name() string                 { return f.name }
func (f *fakeProvider) BuildURL(baseURL string) string { return baseURL }
func (f *fakeProvider) SetHeaders(req *http.Request)   {}
func (f *fakeProvider) BuildRequestBody(model string, messages []Message, temperature *float64, maxTokens int) ([]byte, error) {
	return []byte("{}"), nil
}
func (f *fakeProvider) ParseResponse(body []byte, model string) (*Response, error) {
	return &Response{Content: "fake"}, nil
}

func TestRegisterProviderAndGetProvider(t *testing.T) {
	RegisterProvider(&fakeProvider{name: "test-fake-registry"})

	got := GetProvider("test-fake-registry")
	if got == nil || got.Name() != "test-fake-registry" {
		t.Fatalf("GetProvider() = %v, want the registered fake provider", got)
	}
}

func TestGetProviderUnknownReturnsNil(t *testing.T) {
	if GetProvider("does-not-exist") != nil {
		t.Error("expected GetProvider() to return nil for an unregistered name")
	}
}

func TestListProvidersIncludesRegistered(t *testing.T) {
	RegisterProvider(&fakeProvider{name: "test-fake-list"})

	found := false
	for _, name := range ListProviders() {
		if name == "test-fake-list" {
			found = true
		}
	}
	if !found {
		t.Error("expected ListProviders() to include the registered fake provider")
	}
}
