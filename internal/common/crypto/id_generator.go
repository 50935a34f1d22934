package crypto

import "github.com/google/uuid"

// IDGenerator produces opaque unique identifiers. User ids and session
// tokens both come from here; neither is ever derived from a username.
type IDGenerator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	return uuid.NewString(), nil
}
