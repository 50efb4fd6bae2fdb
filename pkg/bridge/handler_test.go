package bridge_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lectern-dev/lectern/pkg/bridge"
	"github.com/lectern-dev/lectern/pkg/nav"
	"github.com/lectern-dev/lectern/pkg/protocol"
)

func noopHandler(context.Context, nav.Params, string) error { return nil }

func portalSetup(router *nav.Router, _ *bridge.Session) error {
	if err := router.Register("/", noopHandler); err != nil {
		return err
	}
	return router.Register("/subject/:code", noopHandler)
}

func dial(t *testing.T, setup bridge.Setup) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(bridge.NewHandler(setup))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, ev *protocol.Event) {
	t.Helper()
	data, err := protocol.EncodeEvent(ev)
	if err != nil {
		t.Fatalf("encode event: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write event: %v", err)
	}
}

func readCommand(t *testing.T, conn *websocket.Conn) *protocol.Command {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read command: %v", err)
	}
	cmd, err := protocol.DecodeCommand(msg)
	if err != nil {
		t.Fatalf("decode command: %v", err)
	}
	return cmd
}

// greet completes the handshake and returns the accepted hello.
func greet(t *testing.T, conn *websocket.Conn, location string) *protocol.ServerHello {
	t.Helper()
	sendEvent(t, conn, &protocol.Event{
		Type:  protocol.EventHello,
		Hello: &protocol.ClientHello{Version: protocol.Version, Location: location},
	})
	cmd := readCommand(t, conn)
	if cmd.Type != protocol.CommandHello || cmd.Hello == nil {
		t.Fatalf("first command = %+v, want hello", cmd)
	}
	return cmd.Hello
}

func TestHandshakeAccepted(t *testing.T) {
	conn := dial(t, portalSetup)

	hello := greet(t, conn, "/")
	if !hello.Accepted() {
		t.Fatalf("hello status = %q, want accepted", hello.Status)
	}
	if hello.Session == "" {
		t.Error("hello carries no session id")
	}
}

func TestHandshakeRejectsVersionMismatch(t *testing.T) {
	conn := dial(t, portalSetup)

	sendEvent(t, conn, &protocol.Event{
		Type:  protocol.EventHello,
		Hello: &protocol.ClientHello{Version: protocol.Version + 1, Location: "/"},
	})
	cmd := readCommand(t, conn)
	if cmd.Type != protocol.CommandHello || cmd.Hello.Accepted() {
		t.Fatalf("command = %+v, want rejected hello", cmd)
	}
}

func TestClickEmitsNavigationCommands(t *testing.T) {
	conn := dial(t, portalSetup)
	greet(t, conn, "/")

	sendEvent(t, conn, &protocol.Event{
		Type:  protocol.EventClick,
		Click: &protocol.ClickEvent{Href: "/subject/cfp?unit=2", HasAnchor: true},
	})

	// Bookkeeping replace of the entry being left, then the committed
	// navigation: push, active-link update, scroll to top.
	cmd := readCommand(t, conn)
	if cmd.Type != protocol.CommandReplace || cmd.Replace.State.Pathname != "/" {
		t.Fatalf("command 1 = %+v, want replace of /", cmd)
	}

	cmd = readCommand(t, conn)
	if cmd.Type != protocol.CommandPush {
		t.Fatalf("command 2 = %+v, want push", cmd)
	}
	if cmd.Push.State.Pathname != "/subject/cfp" || cmd.Push.Location != "/subject/cfp?unit=2" {
		t.Errorf("push payload = %+v", cmd.Push)
	}

	cmd = readCommand(t, conn)
	if cmd.Type != protocol.CommandActive || cmd.Active.Pathname != "/subject/cfp" {
		t.Fatalf("command 3 = %+v, want active /subject/cfp", cmd)
	}

	cmd = readCommand(t, conn)
	if cmd.Type != protocol.CommandScroll || cmd.Scroll.Behavior != protocol.BehaviorSmooth {
		t.Fatalf("command 4 = %+v, want smooth scroll", cmd)
	}
	if cmd.Scroll.X != 0 || cmd.Scroll.Y != 0 {
		t.Errorf("scroll target = (%d,%d), want top", cmd.Scroll.X, cmd.Scroll.Y)
	}
}

func TestUnmatchedClickFallsBackToAssign(t *testing.T) {
	conn := dial(t, portalSetup)
	greet(t, conn, "/")

	sendEvent(t, conn, &protocol.Event{
		Type:  protocol.EventClick,
		Click: &protocol.ClickEvent{Href: "/admin", HasAnchor: true},
	})

	cmd := readCommand(t, conn)
	if cmd.Type != protocol.CommandAssign || cmd.Assign.Href != "/admin" {
		t.Fatalf("command = %+v, want assign /admin", cmd)
	}
}

// A clicked link always reaches the server with its default action
// already prevented, so even a click the router declines to intercept
// must come back as a full navigation, never silence.
func TestUninterceptableClickStillNavigates(t *testing.T) {
	conn := dial(t, portalSetup)
	greet(t, conn, "/")

	sendEvent(t, conn, &protocol.Event{
		Type:  protocol.EventClick,
		Click: &protocol.ClickEvent{Href: "/subject/cfp", HasAnchor: false},
	})

	cmd := readCommand(t, conn)
	if cmd.Type != protocol.CommandAssign || cmd.Assign.Href != "/subject/cfp" {
		t.Fatalf("command = %+v, want assign /subject/cfp", cmd)
	}
}

func TestPopToUnknownPathReloads(t *testing.T) {
	conn := dial(t, portalSetup)
	greet(t, conn, "/")

	sendEvent(t, conn, &protocol.Event{
		Type: protocol.EventPop,
		Pop:  &protocol.PopEvent{Location: "/legacy"},
	})

	if cmd := readCommand(t, conn); cmd.Type != protocol.CommandReload {
		t.Fatalf("command = %+v, want reload", cmd)
	}
}

func TestScrollReportFeedsBookkeeping(t *testing.T) {
	conn := dial(t, portalSetup)
	greet(t, conn, "/")

	sendEvent(t, conn, &protocol.Event{
		Type:   protocol.EventScroll,
		Scroll: &protocol.ScrollEvent{X: 0, Y: 800},
	})
	sendEvent(t, conn, &protocol.Event{
		Type:     protocol.EventNavigate,
		Navigate: &protocol.NavigateEvent{Location: "/subject/wd"},
	})

	cmd := readCommand(t, conn)
	if cmd.Type != protocol.CommandReplace {
		t.Fatalf("command = %+v, want replace", cmd)
	}
	if cmd.Replace.State.Scroll == nil || cmd.Replace.State.Scroll.Y != 800 {
		t.Errorf("bookkept scroll = %+v, want y=800", cmd.Replace.State.Scroll)
	}
}

func TestPingAnsweredWithPong(t *testing.T) {
	conn := dial(t, portalSetup)
	greet(t, conn, "/")

	sendEvent(t, conn, &protocol.Event{
		Type: protocol.EventPing,
		Ping: &protocol.PingEvent{Timestamp: 12345},
	})

	cmd := readCommand(t, conn)
	if cmd.Type != protocol.CommandPong {
		t.Fatalf("command = %+v, want pong", cmd)
	}
	if cmd.Pong == nil || cmd.Pong.Timestamp != 12345 {
		t.Errorf("pong payload = %+v, want echoed timestamp", cmd.Pong)
	}
}
