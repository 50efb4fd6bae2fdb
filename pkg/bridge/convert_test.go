package bridge

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lectern-dev/lectern/pkg/nav"
	"github.com/lectern-dev/lectern/pkg/protocol"
)

func TestWireStateRoundTrip(t *testing.T) {
	st := nav.State{
		Pathname: "/subject/cfp",
		Scroll:   &nav.ScrollPosition{X: 0, Y: 800},
		Extra:    map[string]any{"from": "sidebar"},
	}

	ws := wireState(st)
	if ws.Pathname != st.Pathname {
		t.Errorf("pathname = %q, want %q", ws.Pathname, st.Pathname)
	}
	if ws.Scroll == nil || ws.Scroll.Y != 800 {
		t.Errorf("scroll = %+v, want y=800", ws.Scroll)
	}

	back := navState(&ws)
	if back.Pathname != st.Pathname || back.Scroll == nil || back.Scroll.Y != 800 {
		t.Errorf("navState() = %+v", back)
	}
	if back.Extra["from"] != "sidebar" {
		t.Errorf("extra = %v, want from=sidebar", back.Extra)
	}
}

func TestNavStateNil(t *testing.T) {
	if got := navState(nil); got != nil {
		t.Errorf("navState(nil) = %+v, want nil", got)
	}
}

func TestNavClickModifierBitsAgree(t *testing.T) {
	// The wire layout and the router layout must stay bit-for-bit
	// compatible for the cast in navClick to be valid.
	pairs := []struct {
		wire uint8
		mod  nav.Modifiers
	}{
		{protocol.ModCtrl, nav.ModCtrl},
		{protocol.ModShift, nav.ModShift},
		{protocol.ModAlt, nav.ModAlt},
		{protocol.ModMeta, nav.ModMeta},
	}
	for _, p := range pairs {
		click := navClick(&protocol.ClickEvent{Href: "/x", Modifiers: p.wire})
		if !click.Modifiers.Has(p.mod) {
			t.Errorf("wire bit %#x did not map to %v", p.wire, p.mod)
		}
	}
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		host   string
		want   bool
	}{
		{"no origin header", "", "portal.local", true},
		{"matching host", "http://portal.local", "portal.local", true},
		{"other host", "http://evil.example", "portal.local", false},
		{"other port", "http://portal.local:9999", "portal.local", false},
		{"garbage origin", "http://bad host/", "portal.local", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := SameOrigin(r); got != tt.want {
				t.Errorf("SameOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}
