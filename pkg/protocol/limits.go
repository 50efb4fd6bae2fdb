package protocol

// Size limits enforced during decoding. They bound what a single
// misbehaving client can make the server allocate or store.
const (
	// MaxMessageSize is the largest accepted wire message, in bytes.
	// Navigation traffic is tiny; anything near this limit is abuse.
	MaxMessageSize = 16 * 1024

	// MaxHrefLen bounds href and location fields. Browsers cap URLs far
	// below this in practice.
	MaxHrefLen = 2048

	// MaxExtraBytes bounds the serialized size of caller-supplied
	// history entry state.
	MaxExtraBytes = 4 * 1024
)
