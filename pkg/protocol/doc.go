// Package protocol defines the JSON wire protocol between the browser
// page and the navigation server.
//
// Events flow from client to server when the user interacts with the
// page; commands flow from server to client to mutate the history
// stack, the viewport, and the document location.
//
// # Messages
//
// Client → server events:
//
//   - hello: connection setup (version, initial location)
//   - click: an anchor activation with its modifier keys
//   - navigate: a programmatic navigation request
//   - pop: a back/forward traversal with the entry's stored state
//   - scroll: a viewport offset report
//   - ping: heartbeat
//
// Server → client commands:
//
//   - hello: handshake acceptance
//   - push / replace: history stack writes
//   - back: traverse one entry backwards
//   - scroll: move the viewport
//   - active: recompute active-link highlighting
//   - assign / reload: full navigations
//   - error: decode or session failure
//   - pong: heartbeat response
//
// # Encoding
//
// Every message is a single JSON object with a "type" discriminator and
// exactly one payload field matching it. Encode/Decode pairs validate the
// discriminator and enforce the size limits in limits.go; malformed input
// is reported with the sentinel errors in this package, never a panic.
package protocol
