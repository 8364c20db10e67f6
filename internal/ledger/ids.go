package ledger

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/theirongolddev/nexus/internal/model"
)

// IDSource hands out unique identifiers for new users and transactions.
type IDSource interface {
	NewID() model.ID
}

// UUIDSource generates random version 4 UUIDs.
type UUIDSource struct{}

// NewID implements IDSource.
func (UUIDSource) NewID() model.ID {
	return model.ID(uuid.NewString())
}

// Sequence generates prefix1, prefix2, ... It is deterministic and meant for
// tests and fixtures.
type Sequence struct {
	Prefix string
	n      int
}

// NewID implements IDSource.
func (s *Sequence) NewID() model.ID {
	s.n++
	return model.ID(s.Prefix + strconv.Itoa(s.n))
}
