package protocol

// Version is the protocol version spoken by this package. The server
// rejects hellos from any other version; there is no negotiation.
const Version = 1

// Handshake statuses returned in ServerHello.
const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ClientHello is the first event on a new connection.
type ClientHello struct {
	Version  int    `json:"version"`
	Location string `json:"location"`
	Session  string `json:"session,omitempty"`
}

// ServerHello is the first command on a new connection.
type ServerHello struct {
	Status  string `json:"status"`
	Session string `json:"session,omitempty"`
	Time    int64  `json:"time,omitempty"` // unix milliseconds
}

// Accepted reports whether the handshake succeeded.
func (h *ServerHello) Accepted() bool {
	return h.Status == StatusAccepted
}
