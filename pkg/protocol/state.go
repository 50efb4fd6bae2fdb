package protocol

import "encoding/json"

// ScrollPoint is a viewport offset in CSS pixels.
type ScrollPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// HistoryState is the wire form of a history entry's stored state. Extra
// carries caller-supplied data opaque to the protocol; it is size-checked
// but never inspected.
type HistoryState struct {
	Pathname string          `json:"pathname"`
	Scroll   *ScrollPoint    `json:"scroll,omitempty"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

func (s *HistoryState) validate() error {
	if len(s.Pathname) > MaxHrefLen {
		return ErrHrefTooLong
	}
	if len(s.Extra) > MaxExtraBytes {
		return ErrExtraTooLarge
	}
	return nil
}
