package crypto

import "github.com/google/uuid"

// IDGenerator produces entity identifiers. Ids are generated here rather than
// by the database so that created records can be returned without a re-read.
type IDGenerator interface {
	NewID() (uuid.UUID, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (uuid.UUID, error) {
	return uuid.NewRandom()
}
