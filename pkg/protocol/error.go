package protocol

import "errors"

// Decode errors. DecodeEvent and DecodeCommand wrap these so callers can
// distinguish abuse (oversized input) from plain malformed JSON.
var (
	ErrMessageTooLarge = errors.New("protocol: message exceeds size limit")
	ErrUnknownType     = errors.New("protocol: unknown message type")
	ErrMissingPayload  = errors.New("protocol: payload missing for message type")
	ErrHrefTooLong     = errors.New("protocol: href exceeds length limit")
	ErrExtraTooLarge   = errors.New("protocol: entry state exceeds size limit")
)

// ErrorCode identifies the class of a wire-level error message.
type ErrorCode string

const (
	CodeInvalidMessage ErrorCode = "invalid_message"
	CodeUnauthorized   ErrorCode = "unauthorized"
	CodeSessionExpired ErrorCode = "session_expired"
	CodeRateLimited    ErrorCode = "rate_limited"
	CodeServerError    ErrorCode = "server_error"
)

// ErrorMessage is the payload of an error command. Fatal errors are
// followed by connection close.
type ErrorMessage struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message,omitempty"`
	Fatal   bool      `json:"fatal,omitempty"`
}

// NewError creates a non-fatal ErrorMessage.
func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// NewFatalError creates an ErrorMessage that closes the connection.
func NewFatalError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message, Fatal: true}
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Message == "" {
		return string(em.Code)
	}
	return string(em.Code) + ": " + em.Message
}

// IsFatal reports whether the connection should be closed.
func (em *ErrorMessage) IsFatal() bool {
	return em.Fatal
}
