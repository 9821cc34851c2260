package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. Username is the public handle and
// never changes after signup.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:30;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         *string   `gorm:"size:255"`
	Email        *string   `gorm:"size:255"`
	PhoneNumber  *string   `gorm:"size:50"`
	Bio          *string   `gorm:"type:text"`
	AvatarURL    *string   `gorm:"size:512"`
	IsPrime      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicProfile is the projection of a user that anyone may see.
type PublicProfile struct {
	ID        uuid.UUID
	Username  string
	Name      *string
	Bio       *string
	AvatarURL *string
	IsPrime   bool
}

// PublicProfile projects the user onto its publicly visible fields.
func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		IsPrime:   u.IsPrime,
	}
}
