package service

import "github.com/google/uuid"

// Owned is a resource with a single user allowed to mutate it.
type Owned interface {
	Owner() uuid.UUID
}

// actorOwns is the one ownership rule shared by every mutating operation.
// An anonymous actor (uuid.Nil) owns nothing.
func actorOwns(resource Owned, actorID uuid.UUID) bool {
	if actorID == uuid.Nil {
		return false
	}
	return resource.Owner() == actorID
}
