// Package id generates the opaque identifiers assigned to newly stored rows.
package id

import "github.com/google/uuid"

// Generator creates opaque IDs for newly stored rows.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	return uuid.NewString(), nil
}
