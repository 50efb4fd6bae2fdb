package bridge

import (
	"encoding/json"

	"github.com/lectern-dev/lectern/pkg/nav"
	"github.com/lectern-dev/lectern/pkg/protocol"
)

// wireState converts a router history state to its wire form. A caller
// extra map that fails to marshal is dropped rather than failing the
// navigation; it is advisory data.
func wireState(st nav.State) protocol.HistoryState {
	ws := protocol.HistoryState{Pathname: st.Pathname}
	if st.Scroll != nil {
		ws.Scroll = &protocol.ScrollPoint{X: st.Scroll.X, Y: st.Scroll.Y}
	}
	if len(st.Extra) > 0 {
		if raw, err := json.Marshal(st.Extra); err == nil {
			ws.Extra = raw
		}
	}
	return ws
}

// navState converts a wire history state to the router's form.
func navState(ws *protocol.HistoryState) *nav.State {
	if ws == nil {
		return nil
	}
	st := &nav.State{Pathname: ws.Pathname}
	if ws.Scroll != nil {
		st.Scroll = &nav.ScrollPosition{X: ws.Scroll.X, Y: ws.Scroll.Y}
	}
	if len(ws.Extra) > 0 {
		var extra map[string]any
		if err := json.Unmarshal(ws.Extra, &extra); err == nil {
			st.Extra = extra
		}
	}
	return st
}

// navClick converts a wire click event. The modifier bit layout is
// shared between the two packages.
func navClick(ev *protocol.ClickEvent) nav.Click {
	return nav.Click{
		Href:      ev.Href,
		Modifiers: nav.Modifiers(ev.Modifiers),
		HasAnchor: ev.HasAnchor,
	}
}

// wireBehavior maps a scroll behavior to its wire name.
func wireBehavior(b nav.ScrollBehavior) string {
	if b == nav.ScrollSmooth {
		return protocol.BehaviorSmooth
	}
	return protocol.BehaviorAuto
}
