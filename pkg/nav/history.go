package nav

// ScrollPosition is a viewport scroll offset in CSS pixels.
type ScrollPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ScrollBehavior selects how a scroll is applied.
type ScrollBehavior uint8

const (
	// ScrollAuto jumps to the target offset immediately.
	ScrollAuto ScrollBehavior = iota

	// ScrollSmooth animates to the target offset.
	ScrollSmooth
)

// String returns the CSS name of the behavior.
func (b ScrollBehavior) String() string {
	if b == ScrollSmooth {
		return "smooth"
	}
	return "auto"
}

// State is the object persisted into each navigation-history entry. It
// always carries the pathname and, for entries written by the router, the
// scroll offset captured immediately before the entry was left. Extra
// holds caller-supplied state merged in at push time.
//
// State objects are owned by the platform's history stack, not by the
// router; the router only writes them on push and reads them back on pop.
type State struct {
	Pathname string          `json:"pathname"`
	Scroll   *ScrollPosition `json:"scroll,omitempty"`
	Extra    map[string]any  `json:"extra,omitempty"`
}

// History is the router's view of the platform navigation-history stack.
// Implementations append entries, rewrite the current entry's state for
// scroll bookkeeping, and traverse backwards. The stack itself stays owned
// by the platform.
type History interface {
	// Push appends a new entry for location with the given state.
	Push(state State, location string)

	// Replace rewrites the current entry's state and location in place.
	// The router uses this only for scroll-position bookkeeping before
	// leaving an entry.
	Replace(state State, location string)

	// Back traverses one entry backwards. The resulting pop event is
	// delivered to the router through Router.HandlePop by the platform.
	Back()

	// Length reports the number of entries on the stack.
	Length() int
}

// Viewport reads and writes the window scroll offset.
type Viewport interface {
	// Offset returns the current scroll offset.
	Offset() ScrollPosition

	// ScrollTo moves the viewport to pos. Implementations must apply the
	// scroll only after the current render has settled (one tick later in
	// a browser), so restored offsets land on laid-out content.
	ScrollTo(pos ScrollPosition, behavior ScrollBehavior)
}

// Loader performs full browser navigations. It is the router's escape
// hatch: whenever an in-page transition cannot complete safely, the page
// degrades to a standard load instead of being left half-applied.
type Loader interface {
	// Assign performs a full navigation to href, as if the address bar
	// had been used.
	Assign(href string)

	// Reload reloads the current location.
	Reload()
}

// LinkHighlighter recomputes active-link styling after a committed
// navigation. An element is active when its href equals the new path or
// the new path is a strict descendant of it (see IsActive).
type LinkHighlighter interface {
	SetActive(pathname string)
}
