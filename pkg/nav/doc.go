// Package nav implements Lectern's client-side navigation router: the
// stateful subsystem that turns link activations and history pops into
// in-page route transitions without a full reload.
//
// The router owns four concerns:
//
//   - Pattern matching: declarative path patterns ("/subject/:code",
//     "/files/*") are compiled once at registration into structural
//     matchers that test a concrete path and extract named parameters.
//   - Gating: an ordered middleware pipeline and an optional per-route
//     authorization gate run before a navigation is committed. The first
//     rejection aborts the navigation with no visible change.
//   - Dispatch: the matched route handler is invoked with the extracted
//     parameters and the full requested location.
//   - History and scroll consistency: each committed push writes a history
//     entry carrying the pathname and the scroll offset captured before
//     leaving, and pops restore the stored offset once layout settles.
//
// The router never talks to a browser directly. It drives the platform
// through the History, Viewport, Loader, and LinkHighlighter interfaces,
// so the same logic runs under the WebSocket bridge in production and
// under in-memory fakes in tests (see the navtest subpackage).
//
// Every failure converges on one of two safe outcomes: the page stays
// exactly where it was (middleware or auth rejection), or the platform
// falls back to a standard full-page navigation (no matching route, or a
// fault in the handler or the surrounding procedure). The router never
// leaves the address bar and the rendered content disagreeing.
//
// Overlapping navigations are resolved deterministically: each navigation
// takes a monotonically increasing sequence number, and a navigation that
// is superseded before it commits discards its history, scroll, and
// active-link effects. Cancellation of the in-flight handler itself is not
// supported; only its effects are discarded.
package nav
