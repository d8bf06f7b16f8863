package catalog

import "github.com/google/uuid"

// IDGenerator produces unique record identifiers. The reconciler accepts
// one as an option so tests can substitute a deterministic sequence.
type IDGenerator func() string

// NewID returns a random UUID string. This is the default IDGenerator.
func NewID() string {
	return uuid.NewString()
}
