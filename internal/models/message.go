package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageStatus is the visibility bucket a receiver files a message under.
// It is unrelated to FavoriteEdge.
type MessageStatus string

const (
	// MessageStatusInbox is the only state a message is created in.
	MessageStatusInbox MessageStatus = "inbox"
	// MessageStatusPublic messages are listed on the receiver's public profile.
	MessageStatusPublic   MessageStatus = "public"
	MessageStatusFavorite MessageStatus = "favorite"
	// MessageStatusDeleted is terminal. Deleted rows stay as tombstones and are
	// excluded from every listing.
	MessageStatusDeleted MessageStatus = "deleted"
)

// ListableStatuses are the buckets a receiver can browse.
var ListableStatuses = []MessageStatus{MessageStatusInbox, MessageStatusPublic, MessageStatusFavorite}

// ParseMessageStatus validates a raw status string.
func ParseMessageStatus(s string) (MessageStatus, bool) {
	switch status := MessageStatus(s); status {
	case MessageStatusInbox, MessageStatusPublic, MessageStatusFavorite, MessageStatusDeleted:
		return status, true
	default:
		return "", false
	}
}

// Message is a short text posted to a receiver's profile.
// SenderID is nil for anonymous submissions and is never exposed to the receiver.
type Message struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ReceiverID uuid.UUID     `gorm:"type:uuid;not null;index:idx_messages_receiver_status,priority:1"`
	SenderID   *uuid.UUID    `gorm:"type:uuid"`
	Content    string        `gorm:"type:text;not null"`
	Status     MessageStatus `gorm:"type:varchar(20);not null;default:'inbox';index:idx_messages_receiver_status,priority:2"`
	CreatedAt  time.Time     `gorm:"index"`
	UpdatedAt  time.Time
}

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Owner is the receiver: only they may move the message between buckets.
func (m *Message) Owner() uuid.UUID {
	return m.ReceiverID
}

// IsDeleted reports whether the message has been removed.
func (m *Message) IsDeleted() bool {
	return m.Status == MessageStatusDeleted
}
