package i

import (
	"time"

	"github.com/google/uuid"
)

// Tokenizer defines methods for generating and decoding session tokens.
type Tokenizer interface {
	// Generate creates a token bound to the session that expires after ttl.
	Generate(sessionID uuid.UUID, ttl time.Duration) (string, error)

	// Decode validates a token and returns the session it was issued for.
	Decode(token string) (uuid.UUID, error)
}
