package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenAIProvider_DefaultBaseURL(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-3.5-turbo"})
	if provider.baseURL != "https://api.openai.com/v1" {
		t.Errorf("expected default baseURL, got %s", provider.baseURL)
	}
}

func TestNewOpenAIProvider_TrimTrailingSlash(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: "https://api.openai.com/v1/"})
	if provider.baseURL != "https://api.openai.com/v1" {
		t.Errorf("expected trailing slash trimmed, got %s", provider.baseURL)
	}
}

func TestOpenAIProvider_Generate_MissingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called when API key is missing")
	}))
	defer server.Close()

	provider := NewOpenAIProvider(OpenAIConfig{Model: "m", BaseURL: server.URL})
	_, err := provider.Generate(context.Background(), []Message{{Role: "user", Content: "Hello"}})
	if err == nil {
		t.Fatal("expected error for missing API key, got nil")
	}
}

func TestOpenAIProvider_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST method, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected path '/chat/completions', got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-api-key" {
			t.Errorf("expected bearer auth header, got %s", auth)
		}

		var reqBody map[string]any
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if reqBody["model"] != "gpt-3.5-turbo" {
			t.Errorf("expected model 'gpt-3.5-turbo', got %v", reqBody["model"])
		}
		if reqBody["temperature"] != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", reqBody["temperature"])
		}
		if reqBody["max_tokens"] != float64(1500) {
			t.Errorf("expected max_tokens 1500, got %v", reqBody["max_tokens"])
		}

		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "You got this. One rep at a time."}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "test-api-key", Model: "gpt-3.5-turbo", BaseURL: server.URL})
	result, err := provider.Generate(context.Background(), []Message{
		{Role: "system", Content: "You are Dr Flex."},
		{Role: "user", Content: "Motivate me"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "You got this. One rep at a time." {
		t.Errorf("unexpected content: %s", result)
	}
}

func TestOpenAIProvider_Generate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid API key"}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "bad", Model: "m", BaseURL: server.URL})
	_, err := provider.Generate(context.Background(), []Message{{Role: "user", Content: "Hello"}})
	if err == nil {
		t.Fatal("expected error for HTTP error, got nil")
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %T", err)
	}
	if upstream.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", upstream.Status)
	}
}

func TestOpenAIProvider_Generate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: server.URL})
	_, err := provider.Generate(context.Background(), []Message{{Role: "user", Content: "Hello"}})
	if err == nil {
		t.Fatal("expected error for empty choices, got nil")
	}
	if err.Error() != "LLM response had no choices" {
		t.Errorf("expected 'LLM response had no choices', got: %s", err.Error())
	}
}

func TestOpenAIProvider_Generate_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "   "}}]}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: server.URL})
	_, err := provider.Generate(context.Background(), []Message{{Role: "user", Content: "Hello"}})
	if err == nil {
		t.Fatal("expected error for empty content, got nil")
	}
	if err.Error() != "LLM response was empty" {
		t.Errorf("expected 'LLM response was empty', got: %s", err.Error())
	}
}

func TestOpenAIProvider_Generate_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: server.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := provider.Generate(ctx, []Message{{Role: "user", Content: "Hello"}})
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestOpenAIProvider_Generate_NetworkError(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: "http://localhost:1"})
	_, err := provider.Generate(context.Background(), []Message{{Role: "user", Content: "Hello"}})
	if err == nil {
		t.Fatal("expected error for network failure, got nil")
	}
}
