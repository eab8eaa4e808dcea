package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url with params", "https://www.youtube.com/embed/dQw4w9WgXcQ?feature=oembed", "dQw4w9WgXcQ"},
		{"watch url", "https://www.youtube.com/watch?v=abc123XYZ_-", "abc123XYZ_-"},
		{"short url", "https://youtu.be/abc123XYZ_-", "abc123XYZ_-"},
		{"not a youtube url", "https://example.com/video", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.url); got != tt.expected {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0" dur="2">Hola a todos</text>
  <text start="2" dur="3">hoy preparamos un locro &amp;quot;casero&amp;quot;</text>
  <text start="5" dur="1"> </text>
</transcript>`))
	}))
	defer server.Close()

	client := NewClient()
	client.TimedTextURL = server.URL + "?v=%s"

	got := client.Fetch(context.Background(), "abc")
	if !strings.HasPrefix(got, "Hola a todos hoy preparamos un locro") {
		t.Errorf("unexpected transcript: %q", got)
	}
}

func TestFetchNoCaptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<transcript></transcript>`))
	}))
	defer server.Close()

	client := NewClient()
	client.TimedTextURL = server.URL + "?v=%s"

	if got := client.Fetch(context.Background(), "abc"); got != "Transcript not available for this video." {
		t.Errorf("expected not-available message, got %q", got)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	client.TimedTextURL = server.URL + "?v=%s"

	got := client.Fetch(context.Background(), "abc")
	if !strings.HasPrefix(got, "Error retrieving transcript:") {
		t.Errorf("expected in-band error, got %q", got)
	}
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	text := "Una sola frase."
	if got := Summarize(text, 3); got != text {
		t.Errorf("short text should pass through, got %q", got)
	}
}

func TestSummarizePassesThroughErrors(t *testing.T) {
	for _, text := range []string{
		"",
		"Error retrieving transcript: HTTP 404.",
		"Transcript not available for this video.",
	} {
		if got := Summarize(text, 2); got != text {
			t.Errorf("Summarize(%q) = %q, want unchanged", text, got)
		}
	}
}

func TestSummarizePicksFrequentWordSentences(t *testing.T) {
	text := "El locro lleva papa y queso. El locro de papa es una sopa espesa. " +
		"Ayer llovió bastante. La papa del locro debe ser harinosa. Gracias por mirar."

	summary := Summarize(text, 2)

	if !strings.Contains(summary, "locro") {
		t.Errorf("summary should keep locro sentences, got %q", summary)
	}
	if strings.Contains(summary, "llovió") || strings.Contains(summary, "Gracias") {
		t.Errorf("summary should drop off-topic sentences, got %q", summary)
	}
	if len(splitSentences(summary)) > 2 {
		t.Errorf("summary has more than 2 sentences: %q", summary)
	}
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	text := "Primero pelamos la papa para el locro. Comentario sin relación alguna aquí. " +
		"Luego cocinamos la papa del locro con queso. Fin."

	summary := Summarize(text, 2)
	first := strings.Index(summary, "Primero")
	second := strings.Index(summary, "Luego")
	if first == -1 || second == -1 || first > second {
		t.Errorf("summary sentences out of order: %q", summary)
	}
}

func TestLikeCount(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		expected int
	}{
		{"aria label", `{"label":"12,345 likes"}`, 12345},
		{"likeCount key", `{"likeCount":"678"}`, 678},
		{"likes key", `{"likes":42}`, 42},
		{"accessibility text", `like this video along with 1,234 other people`, 1234},
		{"no match", `<html><body>nothing here</body></html>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.page))
			}))
			defer server.Close()

			client := NewClient()
			client.WatchURL = server.URL + "?v=%s"

			got := client.LikeCount(context.Background(), "https://www.youtube.com/embed/abc123")
			if got != tt.expected {
				t.Errorf("LikeCount = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestLikeCountRequestFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient()
	client.WatchURL = server.URL + "?v=%s"

	if got := client.LikeCount(context.Background(), "https://www.youtube.com/embed/abc123"); got != 0 {
		t.Errorf("expected 0 on request failure, got %d", got)
	}
}
