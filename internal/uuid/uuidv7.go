// Package uuid generates time-ordered ids for database primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. The leading timestamp bits keep index
// pages append-mostly under insert load. Falls back to v4 in the
// unlikely case the v7 source errors.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}
