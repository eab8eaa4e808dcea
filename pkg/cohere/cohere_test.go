package cohere

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gastronomia/pkg/schema"
)

func chatBody(text string) string {
	return `{"message": {"content": [{"type": "text", "text": "` + text + `"}]}}`
}

func testRequest() ChatRequest {
	return ChatRequest{
		Messages: []schema.Message{
			{Role: "system", Content: "Eres un chef."},
			{Role: "user", Content: "¿Cómo se hace el locro?"},
		},
		MaxTokens:   100,
		Temperature: 0.7,
	}
}

func newTestClient(baseURL string) *Client {
	client := NewClient("test-key", baseURL, "test-model")
	client.RetryDelay = time.Millisecond
	return client
}

func TestChat(t *testing.T) {
	var gotAuth string
	var gotPayload chatPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(chatBody("Se hace con papas y queso.")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Chat(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if text != "Se hace con papas y queso." {
		t.Errorf("unexpected completion: %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotPayload.Model != "test-model" {
		t.Errorf("unexpected model: %q", gotPayload.Model)
	}
	if gotPayload.MaxTokens != 100 {
		t.Errorf("unexpected max tokens: %d", gotPayload.MaxTokens)
	}
	if len(gotPayload.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(gotPayload.Messages))
	}
}

func TestChatRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(chatBody("Respuesta tras reintentos.")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Chat(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Chat failed after retries: %v", err)
	}

	if text != "Respuesta tras reintentos." {
		t.Errorf("unexpected completion: %q", text)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestChatExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Chat(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestChatEmptyCompletionRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"message": {"content": []}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Chat(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for empty completions")
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestChatTrimsWhitespace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatBody("  Respuesta con espacios.  ")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Chat(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if text != "Respuesta con espacios." {
		t.Errorf("completion not trimmed: %q", text)
	}
}

func TestChatCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	if _, err := client.Chat(ctx, testRequest()); err == nil {
		t.Fatal("expected error with cancelled context")
	}
}
