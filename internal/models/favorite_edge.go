package models

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteEdge records that OwnerID has marked TargetID as a favorite.
// The edge is directed; the target does not need to reciprocate.
// The primary key is a composite of (OwnerID, TargetID) to ensure uniqueness.
type FavoriteEdge struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TargetID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"index"`
}

// Owner returns the only user allowed to create or destroy the edge.
func (e *FavoriteEdge) Owner() uuid.UUID {
	return e.OwnerID
}
