package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-triage/pkg/render"
)

type namedFormat string

func (n namedFormat) Name() string        { return string(n) }
func (n namedFormat) ContentType() string { return "text/plain" }

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry[render.Format]()
	for _, name := range []string{"text", "html"} {
		if err := registry.Register(namedFormat(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	if err := registry.Register(namedFormat("html")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedFormat("  ")); err == nil {
		t.Fatalf("expected empty name error")
	}

	if diff := cmp.Diff([]string{"html", "text"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	got, err := registry.Get("text")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "text" {
		t.Fatalf("got %q", got.Name())
	}
	if _, err := registry.Get("svg"); err == nil {
		t.Fatalf("expected not found error")
	}
}
