package openrouter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tidwall/gjson"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewChatModel(&Config{
		APIKey:           "test-key",
		BaseURL:          server.URL,
		Model:            "google/gemini-2.5-flash-preview-05-20",
		Temperature:      0.1,
		MaxTokens:        4000,
		FrequencyPenalty: 0.1,
		PresencePenalty:  0.1,
		Referer:          "https://example.com",
		Title:            "Islamic AI Assistant",
	})
	if err != nil {
		t.Fatalf("NewChatModel: %v", err)
	}
	return client
}

var testInput = []*schema.Message{
	schema.SystemMessage("You are a knowledgeable Islamic scholar."),
	schema.UserMessage("What is zakat?"),
}

func TestGenerateRequestContract(t *testing.T) {
	var body []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "https://example.com" {
			t.Errorf("HTTP-Referer = %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "Islamic AI Assistant" {
			t.Errorf("X-Title = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Zakat is obligatory charity."},"finish_reason":"stop"}],"usage":{"prompt_tokens":12,"completion_tokens":5,"total_tokens":17}}`))
	})

	reply, err := client.Generate(context.Background(), testInput)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply.Role != schema.Assistant || reply.Content != "Zakat is obligatory charity." {
		t.Errorf("unexpected reply: %+v", reply)
	}
	if reply.ResponseMeta == nil || reply.ResponseMeta.Usage == nil {
		t.Fatal("expected usage metadata")
	}
	if reply.ResponseMeta.Usage.PromptTokens != 12 || reply.ResponseMeta.Usage.CompletionTokens != 5 {
		t.Errorf("unexpected usage: %+v", reply.ResponseMeta.Usage)
	}

	checks := map[string]any{
		"model":              "google/gemini-2.5-flash-preview-05-20",
		"messages.#":         int64(2),
		"messages.0.role":    "system",
		"messages.1.role":    "user",
		"messages.1.content": "What is zakat?",
		"max_tokens":         int64(4000),
	}
	for path, want := range checks {
		got := gjson.GetBytes(body, path).Value()
		if n, ok := got.(float64); ok {
			got = int64(n)
		}
		if got != want {
			t.Errorf("body %s = %v, want %v", path, got, want)
		}
	}
	for _, path := range []string{"temperature", "frequency_penalty", "presence_penalty"} {
		if v := gjson.GetBytes(body, path).Float(); v < 0.099 || v > 0.101 {
			t.Errorf("body %s = %v, want 0.1", path, v)
		}
	}
}

func TestGenerateOptionsOverride(t *testing.T) {
	var body []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	_, err := client.Generate(context.Background(), testInput, model.WithMaxTokens(100))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := gjson.GetBytes(body, "max_tokens").Int(); got != 100 {
		t.Errorf("max_tokens = %d, want 100", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		wantAPI bool
	}{
		{
			name:    "provider error message",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"No auth credentials found","code":401}}`,
			wantMsg: "No auth credentials found",
			wantAPI: true,
		},
		{
			name:    "generic error",
			status:  http.StatusBadGateway,
			body:    `upstream unavailable`,
			wantMsg: "API Error (502): Bad Gateway",
			wantAPI: true,
		},
		{
			name:    "unknown status",
			status:  599,
			body:    `{}`,
			wantMsg: "API Error (599): Failed to get response from AI",
			wantAPI: true,
		},
		{
			name:   "missing content",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
		},
		{
			name:   "empty content",
			status: http.StatusOK,
			body:   `{"choices":[{"message":{"content":""}}]}`,
		},
		{
			name:   "non-string content",
			status: http.StatusOK,
			body:   `{"choices":[{"message":{"content":null}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), testInput)
			if err == nil {
				t.Fatal("expected an error")
			}

			var apiErr *APIError
			if tt.wantAPI {
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected *APIError, got %T: %v", err, err)
				}
				if apiErr.StatusCode != tt.status {
					t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
				}
				if apiErr.Message != tt.wantMsg {
					t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
				}
				return
			}
			if !errors.Is(err, ErrInvalidResponse) {
				t.Errorf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestNewChatModelValidation(t *testing.T) {
	if _, err := NewChatModel(&Config{Model: "m"}); err == nil {
		t.Error("expected error without API key")
	}
	if _, err := NewChatModel(&Config{APIKey: "k"}); err == nil {
		t.Error("expected error without model")
	}
	client, err := NewChatModel(&Config{APIKey: "k", Model: "m", BaseURL: "https://example.com/v1/"})
	if err != nil {
		t.Fatalf("NewChatModel: %v", err)
	}
	if client.endpoint != "https://example.com/v1/chat/completions" {
		t.Errorf("endpoint = %q", client.endpoint)
	}
}
