package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeCommandValidatesDiscriminator(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unknown type", `{"type":"teleport"}`, ErrUnknownType},
		{"push without payload", `{"type":"push"}`, ErrMissingPayload},
		{"replace without payload", `{"type":"replace"}`, ErrMissingPayload},
		{"scroll without payload", `{"type":"scroll"}`, ErrMissingPayload},
		{"assign without payload", `{"type":"assign"}`, ErrMissingPayload},
		{"error without payload", `{"type":"error"}`, ErrMissingPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommand([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeCommand(%s) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeCommandPayloadlessTypes(t *testing.T) {
	for _, typ := range []string{"back", "reload", "pong"} {
		if _, err := DecodeCommand([]byte(`{"type":"` + typ + `"}`)); err != nil {
			t.Errorf("DecodeCommand(%s) error = %v, want nil", typ, err)
		}
	}
}

func TestCommandConstructors(t *testing.T) {
	cmd := NewPushCommand(HistoryState{Pathname: "/subject/wd"}, "/subject/wd?unit=1")
	data, err := EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("EncodeCommand(push) error = %v", err)
	}
	got, err := DecodeCommand(data)
	if err != nil {
		t.Fatalf("DecodeCommand() error = %v", err)
	}
	if got.Type != CommandPush || got.Push == nil {
		t.Fatalf("decoded = %+v, want push payload", got)
	}
	if got.Push.Location != "/subject/wd?unit=1" || got.Push.State.Pathname != "/subject/wd" {
		t.Errorf("push payload = %+v", got.Push)
	}

	if cmd := NewScrollCommand(0, 800, BehaviorAuto); cmd.Scroll.Behavior != BehaviorAuto {
		t.Errorf("scroll behavior = %q, want auto", cmd.Scroll.Behavior)
	}
	if cmd := NewBackCommand(); cmd.Type != CommandBack {
		t.Errorf("back type = %q", cmd.Type)
	}
}

func TestEncodeCommandRejectsOversizedHref(t *testing.T) {
	cmd := NewAssignCommand("/" + strings.Repeat("a", MaxHrefLen))
	if _, err := EncodeCommand(cmd); !errors.Is(err, ErrHrefTooLong) {
		t.Errorf("EncodeCommand(long assign) error = %v, want ErrHrefTooLong", err)
	}
}

func TestErrorMessage(t *testing.T) {
	em := NewFatalError(CodeSessionExpired, "session gone")
	if !em.IsFatal() {
		t.Error("IsFatal() = false, want true")
	}
	if got := em.Error(); got != "session_expired: session gone" {
		t.Errorf("Error() = %q", got)
	}
	if got := NewError(CodeServerError, "").Error(); got != "server_error" {
		t.Errorf("Error() without message = %q", got)
	}
}
