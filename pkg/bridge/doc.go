// Package bridge connects a browser page to a server-side navigation
// router over a WebSocket.
//
// Each connection gets one Session. The session implements the router's
// platform interfaces (history, viewport, loader, link highlighting) by
// emitting protocol commands, and feeds decoded client events into the
// router on a single event-loop goroutine. The browser side stays thin:
// it forwards clicks, pops, and scroll reports, and applies whatever
// commands come back.
package bridge
