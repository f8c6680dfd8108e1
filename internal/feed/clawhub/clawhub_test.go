package clawhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"trendwatch/internal/feed"
	"trendwatch/pkg/logx"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/skills/trending" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"skills": [
			{"name": "standard-skills", "url": "https://clawhub.ai/skills/standard", "description": "Core web skills", "badge": "Official"},
			{"name": "notion-sync", "url": "https://clawhub.ai/skills/notion", "description": "Sync highlights to Notion", "badge": "Hot"}
		]}`))
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, APIKey: "k"}, logx.Nop())
	got := s.Fetch(context.Background(), 5)
	want := []feed.Item{
		{Name: "standard-skills", URL: "https://clawhub.ai/skills/standard", Description: "Core web skills", Popularity: feed.Tag("Official")},
		{Name: "notion-sync", URL: "https://clawhub.ai/skills/notion", Description: "Sync highlights to Notion", Popularity: feed.Tag("Hot")},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(feed.Popularity{})); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchFailureDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL}, logx.Nop())
	if got := s.Fetch(context.Background(), 5); got != nil {
		t.Errorf("Fetch = %v, want nil", got)
	}
}

func TestFetchBadJSONDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"skills": [`))
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL}, logx.Nop())
	if got := s.Fetch(context.Background(), 5); got != nil {
		t.Errorf("Fetch = %v, want nil", got)
	}
}
