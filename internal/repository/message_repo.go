package repository

import (
	"context"

	"secreto/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepository message data access interface
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	ListByReceiver(ctx context.Context, receiverID uuid.UUID, statuses ...models.MessageStatus) ([]models.Message, error)
	CountByStatus(ctx context.Context, receiverID uuid.UUID) (map[models.MessageStatus]int64, error)
	Update(ctx context.Context, id uuid.UUID, apply func(msg *models.Message) error) (*models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// FindByID returns the message even when it is a deleted tombstone.
func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	var msg models.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, notFound(err, "message %s", id)
	}
	return &msg, nil
}

// ListByReceiver returns the receiver's messages in the given buckets, newest
// first. Deleted messages are never returned.
func (r *messageRepository) ListByReceiver(ctx context.Context, receiverID uuid.UUID, statuses ...models.MessageStatus) ([]models.Message, error) {
	messages := []models.Message{}
	if len(statuses) == 0 {
		return messages, nil
	}
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status IN ? AND status <> ?", receiverID, statuses, models.MessageStatusDeleted).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) CountByStatus(ctx context.Context, receiverID uuid.UUID) (map[models.MessageStatus]int64, error) {
	var rows []struct {
		Status models.MessageStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Select("status, COUNT(*) AS count").
		Where("receiver_id = ? AND status <> ?", receiverID, models.MessageStatusDeleted).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.MessageStatus]int64, len(models.ListableStatuses))
	for _, status := range models.ListableStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Update runs apply against the locked row and persists the resulting status
// in the same transaction. Concurrent updates of one message serialise on the
// row lock. apply may reject the change by returning an error.
func (r *messageRepository) Update(ctx context.Context, id uuid.UUID, apply func(msg *models.Message) error) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Where("id = ?", id).
			First(&msg).Error
		if err != nil {
			return notFound(err, "message %s", id)
		}

		before := msg.Status
		if err := apply(&msg); err != nil {
			return err
		}
		if msg.Status == before {
			return nil
		}
		return tx.Model(&msg).Update("status", msg.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
