package nav

import "strings"

// Modifiers is a bitmask of the modifier keys held during a click.
type Modifiers uint8

const (
	ModCtrl  Modifiers = 0x01
	ModShift Modifiers = 0x02
	ModAlt   Modifiers = 0x04
	ModMeta  Modifiers = 0x08
)

// Has returns true if the specified modifier is set.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// Click describes an activation of an anchor element, as reported by the
// platform after locating the nearest enclosing anchor of the click
// target.
type Click struct {
	// Href is the anchor's href attribute.
	Href string

	// Modifiers are the modifier keys held during the click.
	Modifiers Modifiers

	// HasAnchor is false when no enclosing anchor element was found.
	HasAnchor bool
}

// Interceptable reports whether a click is even a candidate for in-page
// handling. Clicks pass through to native browser handling when there is
// no anchor, when a modifier key that opens new tabs/windows is held, or
// when the href is not an absolute in-document path (external URLs and
// protocol-relative "//host" references).
//
// Route lookup happens separately: an interceptable click whose path has
// no registered route still navigates natively. That is the graceful
// degradation contract, not an error.
func (c Click) Interceptable() bool {
	if !c.HasAnchor {
		return false
	}
	if c.Modifiers.Has(ModCtrl) || c.Modifiers.Has(ModMeta) || c.Modifiers.Has(ModShift) {
		return false
	}
	if !strings.HasPrefix(c.Href, "/") || strings.HasPrefix(c.Href, "//") {
		return false
	}
	return true
}

// IsActive reports whether a link with the given href should carry active
// styling for the current path: the href equals the path, or the path is
// a strict descendant of it. "/subject" is active on "/subject/cfp" but
// "/" is active only on "/" itself.
func IsActive(href, pathname string) bool {
	return pathname == href || strings.HasPrefix(pathname, href+"/")
}
