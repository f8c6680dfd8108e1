package summarize

import (
	"context"
	"errors"
	"testing"

	"trendwatch/internal/feed"
	"trendwatch/pkg/logx"
)

type fakeBackend struct {
	fn func(name, description string) (string, error)
}

func (f *fakeBackend) Generate(_ context.Context, name, description string) (string, error) {
	return f.fn(name, description)
}

func items(names ...string) []feed.Item {
	out := make([]feed.Item, 0, len(names))
	for _, n := range names {
		out = append(out, feed.Item{Name: n, URL: "https://example.com/" + n, Description: "about " + n})
	}
	return out
}

func newService(b Backend) *Service {
	return New(Config{RatePerSec: 1000}, b, logx.Nop())
}

func TestIdentityFallbackWithoutBackend(t *testing.T) {
	in := items("a", "b", "c")
	got := newService(nil).Summarize(context.Background(), in)
	if len(got) != len(in) {
		t.Fatalf("len = %d, want %d", len(got), len(in))
	}
	for i, s := range got {
		if s.Item.Name != in[i].Name {
			t.Errorf("order broken at %d: %q", i, s.Item.Name)
		}
		if s.Text != in[i].Description {
			t.Errorf("text[%d] = %q, want description %q", i, s.Text, in[i].Description)
		}
	}
}

func TestIdentityFallbackUsesSentinelForEmptyDescription(t *testing.T) {
	got := newService(nil).Summarize(context.Background(), []feed.Item{{Name: "x"}})
	if got[0].Text != feed.NoDescription {
		t.Errorf("text = %q, want sentinel", got[0].Text)
	}
}

func TestBackendTextTrimmed(t *testing.T) {
	b := &fakeBackend{fn: func(name, _ string) (string, error) {
		return "  summary of " + name + "\n", nil
	}}
	got := newService(b).Summarize(context.Background(), items("foo"))
	if got[0].Text != "summary of foo" {
		t.Errorf("text = %q", got[0].Text)
	}
}

func TestPerItemFailureContainment(t *testing.T) {
	b := &fakeBackend{fn: func(name, _ string) (string, error) {
		if name == "b" {
			return "", errors.New("backend down")
		}
		return "S:" + name, nil
	}}
	got := newService(b).Summarize(context.Background(), items("a", "b", "c"))
	want := []string{"S:a", "about b", "S:c"}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("text[%d] = %q, want %q", i, got[i].Text, w)
		}
	}
}

func TestEmptyBackendTextFallsBack(t *testing.T) {
	b := &fakeBackend{fn: func(string, string) (string, error) { return "   ", nil }}
	got := newService(b).Summarize(context.Background(), items("a"))
	if got[0].Text != "about a" {
		t.Errorf("text = %q, want description fallback", got[0].Text)
	}
}

func TestEmptyInput(t *testing.T) {
	if got := newService(nil).Summarize(context.Background(), nil); got != nil {
		t.Errorf("Summarize(nil) = %v, want nil", got)
	}
}
