package protocol

import (
	"encoding/json"
	"fmt"
)

// CommandType identifies the type of a server command.
type CommandType string

const (
	CommandHello   CommandType = "hello"
	CommandPush    CommandType = "push"
	CommandReplace CommandType = "replace"
	CommandBack    CommandType = "back"
	CommandScroll  CommandType = "scroll"
	CommandActive  CommandType = "active"
	CommandAssign  CommandType = "assign"
	CommandReload  CommandType = "reload"
	CommandError   CommandType = "error"
	CommandPong    CommandType = "pong"
)

// Scroll behaviors carried by scroll commands.
const (
	BehaviorAuto   = "auto"
	BehaviorSmooth = "smooth"
)

// HistoryCommand writes one history entry, for both push and replace.
type HistoryCommand struct {
	State    HistoryState `json:"state"`
	Location string       `json:"location"`
}

// ScrollCommand moves the viewport. The client applies it after the
// current render settles.
type ScrollCommand struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Behavior string `json:"behavior,omitempty"`
}

// ActiveCommand recomputes active-link highlighting for pathname.
type ActiveCommand struct {
	Pathname string `json:"pathname"`
}

// AssignCommand performs a full navigation to Href.
type AssignCommand struct {
	Href string `json:"href"`
}

// PongCommand answers a ping, echoing its timestamp.
type PongCommand struct {
	Timestamp int64 `json:"ts,omitempty"`
}

// Command is a server-to-client message. Exactly one payload field is
// set, matching Type; back and reload carry none.
type Command struct {
	Type CommandType `json:"type"`

	Hello   *ServerHello    `json:"hello,omitempty"`
	Push    *HistoryCommand `json:"push,omitempty"`
	Replace *HistoryCommand `json:"replace,omitempty"`
	Scroll  *ScrollCommand  `json:"scroll,omitempty"`
	Active  *ActiveCommand  `json:"active,omitempty"`
	Assign  *AssignCommand  `json:"assign,omitempty"`
	Err     *ErrorMessage   `json:"error,omitempty"`
	Pong    *PongCommand    `json:"pong,omitempty"`
}

// NewPushCommand creates a history push command.
func NewPushCommand(state HistoryState, location string) *Command {
	return &Command{Type: CommandPush, Push: &HistoryCommand{State: state, Location: location}}
}

// NewReplaceCommand creates a history replace command.
func NewReplaceCommand(state HistoryState, location string) *Command {
	return &Command{Type: CommandReplace, Replace: &HistoryCommand{State: state, Location: location}}
}

// NewBackCommand creates a back-traversal command.
func NewBackCommand() *Command {
	return &Command{Type: CommandBack}
}

// NewScrollCommand creates a viewport scroll command.
func NewScrollCommand(x, y int, behavior string) *Command {
	return &Command{Type: CommandScroll, Scroll: &ScrollCommand{X: x, Y: y, Behavior: behavior}}
}

// NewActiveCommand creates an active-link command.
func NewActiveCommand(pathname string) *Command {
	return &Command{Type: CommandActive, Active: &ActiveCommand{Pathname: pathname}}
}

// NewAssignCommand creates a full-navigation command.
func NewAssignCommand(href string) *Command {
	return &Command{Type: CommandAssign, Assign: &AssignCommand{Href: href}}
}

// NewReloadCommand creates a reload command.
func NewReloadCommand() *Command {
	return &Command{Type: CommandReload}
}

// NewErrorCommand wraps an ErrorMessage in a command.
func NewErrorCommand(em *ErrorMessage) *Command {
	return &Command{Type: CommandError, Err: em}
}

// EncodeCommand encodes a command to its wire form.
func EncodeCommand(cmd *Command) ([]byte, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(cmd)
}

// DecodeCommand decodes and validates a server command. Used by the
// browser-side runtime and by tests; servers only encode.
func DecodeCommand(data []byte) (*Command, error) {
	if len(data) > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("protocol: decode command: %w", err)
	}
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	return &cmd, nil
}

func (cmd *Command) validate() error {
	switch cmd.Type {
	case CommandHello:
		if cmd.Hello == nil {
			return ErrMissingPayload
		}
	case CommandPush:
		if cmd.Push == nil {
			return ErrMissingPayload
		}
		return cmd.Push.validate()
	case CommandReplace:
		if cmd.Replace == nil {
			return ErrMissingPayload
		}
		return cmd.Replace.validate()
	case CommandScroll:
		if cmd.Scroll == nil {
			return ErrMissingPayload
		}
	case CommandActive:
		if cmd.Active == nil {
			return ErrMissingPayload
		}
		if len(cmd.Active.Pathname) > MaxHrefLen {
			return ErrHrefTooLong
		}
	case CommandAssign:
		if cmd.Assign == nil {
			return ErrMissingPayload
		}
		if len(cmd.Assign.Href) > MaxHrefLen {
			return ErrHrefTooLong
		}
	case CommandError:
		if cmd.Err == nil {
			return ErrMissingPayload
		}
	case CommandBack, CommandReload, CommandPong:
		// No payload required.
	default:
		return ErrUnknownType
	}
	return nil
}

func (hc *HistoryCommand) validate() error {
	if len(hc.Location) > MaxHrefLen {
		return ErrHrefTooLong
	}
	return hc.State.validate()
}
