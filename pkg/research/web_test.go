package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"multibyte kept whole", "résumé", 4, "résu"},
		{"multibyte at boundary", "日本語テキスト", 3, "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.n)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.input, tt.n)
			}
		})
	}
}

func TestWebSearchMultibyteTitles(t *testing.T) {
	long := strings.Repeat("データ", 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"RelatedTopics":[{"Text":"` + long + `","FirstURL":"https://example.com"}]}`))
	}))
	defer server.Close()

	backend := NewWebBackend(server.URL, 5*time.Second)
	records, err := backend.Search(context.Background(), "データ移行", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if !utf8.ValidString(records[0].Title) || !utf8.ValidString(records[0].Snippet) {
		t.Error("truncated fields must stay valid UTF-8")
	}
}
