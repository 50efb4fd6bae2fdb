package protocol

import (
	"encoding/json"
	"fmt"
)

// EventType identifies the type of a client event.
type EventType string

const (
	EventHello    EventType = "hello"
	EventClick    EventType = "click"
	EventNavigate EventType = "navigate"
	EventPop      EventType = "pop"
	EventScroll   EventType = "scroll"
	EventPing     EventType = "ping"
)

// Modifier key bits reported with click events.
const (
	ModCtrl  uint8 = 1 << 0
	ModShift uint8 = 1 << 1
	ModAlt   uint8 = 1 << 2
	ModMeta  uint8 = 1 << 3
)

// ClickEvent is an anchor activation. HasAnchor is false when the click
// landed outside any anchor element; such clicks are reported only so the
// server can observe activity, never intercepted.
type ClickEvent struct {
	Href      string `json:"href"`
	Modifiers uint8  `json:"modifiers,omitempty"`
	HasAnchor bool   `json:"hasAnchor,omitempty"`
}

// NavigateEvent is a programmatic navigation request.
type NavigateEvent struct {
	Location string          `json:"location"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

// PopEvent is a back/forward traversal. State is the stored state of the
// entry being returned to, nil when the entry carries none.
type PopEvent struct {
	Location string        `json:"location"`
	State    *HistoryState `json:"state,omitempty"`
}

// ScrollEvent reports the current viewport offset. The client sends these
// debounced so the server's offset cache stays close to reality.
type ScrollEvent struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PingEvent is a heartbeat.
type PingEvent struct {
	Timestamp int64 `json:"ts,omitempty"` // unix milliseconds
}

// Event is a client-to-server message. Exactly one payload field is set,
// matching Type.
type Event struct {
	Type EventType `json:"type"`

	Hello    *ClientHello   `json:"hello,omitempty"`
	Click    *ClickEvent    `json:"click,omitempty"`
	Navigate *NavigateEvent `json:"navigate,omitempty"`
	Pop      *PopEvent      `json:"pop,omitempty"`
	Scroll   *ScrollEvent   `json:"scroll,omitempty"`
	Ping     *PingEvent     `json:"ping,omitempty"`
}

// EncodeEvent encodes an event to its wire form.
func EncodeEvent(ev *Event) ([]byte, error) {
	if err := ev.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(ev)
}

// DecodeEvent decodes and validates a client event. The input is rejected
// before parsing when it exceeds MaxMessageSize.
func DecodeEvent(data []byte) (*Event, error) {
	if len(data) > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("protocol: decode event: %w", err)
	}
	if err := ev.validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (ev *Event) validate() error {
	switch ev.Type {
	case EventHello:
		if ev.Hello == nil {
			return ErrMissingPayload
		}
		if len(ev.Hello.Location) > MaxHrefLen {
			return ErrHrefTooLong
		}
	case EventClick:
		if ev.Click == nil {
			return ErrMissingPayload
		}
		if len(ev.Click.Href) > MaxHrefLen {
			return ErrHrefTooLong
		}
	case EventNavigate:
		if ev.Navigate == nil {
			return ErrMissingPayload
		}
		if len(ev.Navigate.Location) > MaxHrefLen {
			return ErrHrefTooLong
		}
		if len(ev.Navigate.Extra) > MaxExtraBytes {
			return ErrExtraTooLarge
		}
	case EventPop:
		if ev.Pop == nil {
			return ErrMissingPayload
		}
		if len(ev.Pop.Location) > MaxHrefLen {
			return ErrHrefTooLong
		}
		if ev.Pop.State != nil {
			return ev.Pop.State.validate()
		}
	case EventScroll:
		if ev.Scroll == nil {
			return ErrMissingPayload
		}
	case EventPing:
		// Payload optional.
	default:
		return ErrUnknownType
	}
	return nil
}
