// Package navtest provides in-memory implementations of the nav package's
// platform interfaces. Tests drive a real Router against a fake history
// stack, viewport, and loader, and assert on the recorded effects.
package navtest

import (
	"github.com/lectern-dev/lectern/pkg/nav"
)

// Entry is one recorded history entry.
type Entry struct {
	State    nav.State
	Location string
}

// FakeHistory is an in-memory navigation-history stack.
type FakeHistory struct {
	Entries  []Entry
	Replaced []Entry
	Backs    int
}

// NewFakeHistory creates a history seeded with a single entry for the
// initial document load.
func NewFakeHistory(location string) *FakeHistory {
	return &FakeHistory{
		Entries: []Entry{{State: nav.State{Pathname: location}, Location: location}},
	}
}

// Push implements nav.History.
func (h *FakeHistory) Push(state nav.State, location string) {
	h.Entries = append(h.Entries, Entry{State: state, Location: location})
}

// Replace implements nav.History. The rewritten entry is also recorded in
// Replaced so tests can assert on scroll bookkeeping.
func (h *FakeHistory) Replace(state nav.State, location string) {
	e := Entry{State: state, Location: location}
	if len(h.Entries) > 0 {
		h.Entries[len(h.Entries)-1] = e
	} else {
		h.Entries = append(h.Entries, e)
	}
	h.Replaced = append(h.Replaced, e)
}

// Back implements nav.History. It only counts the traversal; tests decide
// when and with what state to deliver the pop event.
func (h *FakeHistory) Back() {
	h.Backs++
}

// Length implements nav.History.
func (h *FakeHistory) Length() int {
	return len(h.Entries)
}

// Top returns the most recent entry.
func (h *FakeHistory) Top() Entry {
	if len(h.Entries) == 0 {
		return Entry{}
	}
	return h.Entries[len(h.Entries)-1]
}

// ScrollCall is one recorded Viewport.ScrollTo invocation.
type ScrollCall struct {
	Pos      nav.ScrollPosition
	Behavior nav.ScrollBehavior
}

// FakeViewport is an in-memory viewport with a settable offset.
type FakeViewport struct {
	Current nav.ScrollPosition
	Calls   []ScrollCall
}

// Offset implements nav.Viewport.
func (v *FakeViewport) Offset() nav.ScrollPosition {
	return v.Current
}

// ScrollTo implements nav.Viewport. The offset is applied immediately;
// the one-tick deferral is a platform concern the fake does not model.
func (v *FakeViewport) ScrollTo(pos nav.ScrollPosition, behavior nav.ScrollBehavior) {
	v.Current = pos
	v.Calls = append(v.Calls, ScrollCall{Pos: pos, Behavior: behavior})
}

// LastScroll returns the most recent ScrollTo call, if any.
func (v *FakeViewport) LastScroll() (ScrollCall, bool) {
	if len(v.Calls) == 0 {
		return ScrollCall{}, false
	}
	return v.Calls[len(v.Calls)-1], true
}

// FakeLoader records full-navigation fallbacks.
type FakeLoader struct {
	Assigned []string
	Reloads  int
}

// Assign implements nav.Loader.
func (l *FakeLoader) Assign(href string) {
	l.Assigned = append(l.Assigned, href)
}

// Reload implements nav.Loader.
func (l *FakeLoader) Reload() {
	l.Reloads++
}

// FakeLinks records active-link recomputations.
type FakeLinks struct {
	Active []string
}

// SetActive implements nav.LinkHighlighter.
func (l *FakeLinks) SetActive(pathname string) {
	l.Active = append(l.Active, pathname)
}
