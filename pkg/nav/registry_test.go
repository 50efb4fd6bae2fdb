package nav

import (
	"context"
	"testing"
)

func noopHandler(context.Context, Params, string) error { return nil }

func TestRegistryFirstMatchWins(t *testing.T) {
	r := NewRegistry()

	var hit string
	mk := func(name string) Handler {
		return func(context.Context, Params, string) error {
			hit = name
			return nil
		}
	}

	if err := r.Register("/files/*", mk("wildcard"), false); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register("/files/special", mk("special"), false); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// "/files/special" is shadowed: the wildcard registered first wins.
	m, ok := r.Lookup("/files/special")
	if !ok {
		t.Fatal("Lookup() ok = false, want true")
	}
	if err := m.Entry.Handler(context.Background(), m.Params, "/files/special"); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if hit != "wildcard" {
		t.Errorf("matched %q, want first-registered wildcard", hit)
	}
}

func TestRegistryReRegisterKeepsPosition(t *testing.T) {
	r := NewRegistry()

	for _, p := range []string{"/:a", "/mid", "/last"} {
		if err := r.Register(p, noopHandler, false); err != nil {
			t.Fatalf("Register(%q) error = %v", p, err)
		}
	}

	var hit bool
	updated := func(context.Context, Params, string) error {
		hit = true
		return nil
	}
	if err := r.Register("/:a", updated, true); err != nil {
		t.Fatalf("re-Register() error = %v", err)
	}

	got := r.Patterns()
	want := []string{"/:a", "/mid", "/last"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Patterns() = %v, want %v", got, want)
		}
	}

	// The param route still shadows "/mid" because its position did not
	// move, and it now carries the updated handler and auth flag.
	m, ok := r.Lookup("/mid")
	if !ok {
		t.Fatal("Lookup(/mid) ok = false, want true")
	}
	if m.Entry.Pattern != "/:a" {
		t.Errorf("Lookup(/mid) matched %q, want /:a", m.Entry.Pattern)
	}
	if !m.Entry.RequiresAuth {
		t.Error("RequiresAuth not updated by re-registration")
	}
	if err := m.Entry.Handler(context.Background(), nil, "/mid"); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !hit {
		t.Error("handler not updated by re-registration")
	}
}

func TestRegistryRejectsNilHandler(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("/x", nil, false); err != ErrNilHandler {
		t.Errorf("Register(nil handler) error = %v, want ErrNilHandler", err)
	}
}

func TestRegistryLookupNoMatch(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("/subject/:code", noopHandler, false); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, ok := r.Lookup("/unknown"); ok {
		t.Error("Lookup(/unknown) ok = true, want false")
	}
}

func TestRegistryLookupAttachesParams(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("/subject/:code", noopHandler, false); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	m, ok := r.Lookup("/subject/cfp")
	if !ok {
		t.Fatal("Lookup() ok = false, want true")
	}
	if m.Params["code"] != "cfp" {
		t.Errorf("params = %v, want code=cfp", m.Params)
	}
}
