package nav

import "testing"

func TestClickInterceptable(t *testing.T) {
	tests := []struct {
		name  string
		click Click
		want  bool
	}{
		{"plain in-document link", Click{Href: "/subject/cfp", HasAnchor: true}, true},
		{"no anchor", Click{Href: "/subject/cfp"}, false},
		{"ctrl held", Click{Href: "/subject/cfp", HasAnchor: true, Modifiers: ModCtrl}, false},
		{"meta held", Click{Href: "/subject/cfp", HasAnchor: true, Modifiers: ModMeta}, false},
		{"shift held", Click{Href: "/subject/cfp", HasAnchor: true, Modifiers: ModShift}, false},
		{"alt alone does not block", Click{Href: "/subject/cfp", HasAnchor: true, Modifiers: ModAlt}, true},
		{"external url", Click{Href: "https://example.com/x", HasAnchor: true}, false},
		{"protocol relative", Click{Href: "//example.com/x", HasAnchor: true}, false},
		{"relative path", Click{Href: "cfp", HasAnchor: true}, false},
		{"fragment", Click{Href: "#top", HasAnchor: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.click.Interceptable(); got != tt.want {
				t.Errorf("Interceptable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		href string
		path string
		want bool
	}{
		{"/subject/cfp", "/subject/cfp", true},
		{"/subject", "/subject/cfp", true},
		{"/subject", "/subject", true},
		{"/subject", "/subjects", false},
		{"/subject/cfp", "/subject", false},
		{"/", "/", true},
		{"/", "/subject", false},
	}

	for _, tt := range tests {
		if got := IsActive(tt.href, tt.path); got != tt.want {
			t.Errorf("IsActive(%q, %q) = %v, want %v", tt.href, tt.path, got, tt.want)
		}
	}
}

func TestModifiersHas(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Error("set modifiers not reported")
	}
	if m.Has(ModMeta) || m.Has(ModAlt) {
		t.Error("unset modifiers reported")
	}
}
