package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"secreto/backend/internal/common"
	"secreto/backend/internal/models"
	"secreto/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MessageService owns the message lifecycle: submission, listing and moving
// messages between status buckets.
type MessageService interface {
	Submit(ctx context.Context, receiverHandle, content string, senderID *uuid.UUID) (*models.Message, error)
	List(ctx context.Context, receiverID uuid.UUID, status models.MessageStatus) ([]models.Message, error)
	PublicList(ctx context.Context, handle string) ([]models.Message, error)
	Transition(ctx context.Context, messageID, actorID uuid.UUID, status models.MessageStatus) (*models.Message, error)
	Remove(ctx context.Context, messageID, actorID uuid.UUID) error
	Counts(ctx context.Context, receiverID uuid.UUID) (map[models.MessageStatus]int64, error)
}

type messageService struct {
	repo      repository.MessageRepository
	users     UserDirectory
	maxLength int
	now       func() time.Time
}

// NewMessageService creates a new MessageService. Content longer than
// maxLength runes is rejected.
func NewMessageService(repo repository.MessageRepository, users UserDirectory, maxLength int) MessageService {
	return &messageService{
		repo:      repo,
		users:     users,
		maxLength: maxLength,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit posts a message to the receiver's inbox. senderID is nil for
// anonymous submissions.
func (s *messageService) Submit(ctx context.Context, receiverHandle, content string, senderID *uuid.UUID) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("message content is empty: %w", common.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(content); n > s.maxLength {
		return nil, fmt.Errorf("message content has %d characters, limit is %d: %w", n, s.maxLength, common.ErrInvalidInput)
	}

	receiverID, err := s.users.ResolveHandle(ctx, receiverHandle)
	if err != nil {
		return nil, err
	}

	if senderID != nil && *senderID == uuid.Nil {
		senderID = nil
	}
	msg := &models.Message{
		ReceiverID: receiverID,
		SenderID:   senderID,
		Content:    content,
		Status:     models.MessageStatusInbox,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("message_id", msg.ID.String()).
		Str("receiver_id", receiverID.String()).
		Bool("anonymous", senderID == nil).
		Msg("message submitted")
	return msg, nil
}

// List returns the receiver's messages in one bucket, newest first. An empty
// status lists every bucket; deleted messages are never listed.
func (s *messageService) List(ctx context.Context, receiverID uuid.UUID, status models.MessageStatus) ([]models.Message, error) {
	if status == "" {
		return s.repo.ListByReceiver(ctx, receiverID, models.ListableStatuses...)
	}
	if _, ok := models.ParseMessageStatus(string(status)); !ok {
		return nil, fmt.Errorf("unknown status %q: %w", status, common.ErrInvalidInput)
	}
	return s.repo.ListByReceiver(ctx, receiverID, status)
}

// PublicList returns the messages a user has made public. No identity is
// needed to read them.
func (s *messageService) PublicList(ctx context.Context, handle string) ([]models.Message, error) {
	receiverID, err := s.users.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByReceiver(ctx, receiverID, models.MessageStatusPublic)
}

// Transition moves a message to another bucket. Only the receiver may do
// this, and a deleted message can no longer be found.
func (s *messageService) Transition(ctx context.Context, messageID, actorID uuid.UUID, status models.MessageStatus) (*models.Message, error) {
	if _, ok := models.ParseMessageStatus(string(status)); !ok {
		return nil, fmt.Errorf("unknown status %q: %w", status, common.ErrInvalidInput)
	}

	var from models.MessageStatus
	msg, err := s.repo.Update(ctx, messageID, func(msg *models.Message) error {
		if msg.IsDeleted() {
			return fmt.Errorf("message %s: %w", messageID, common.ErrNotFound)
		}
		if !actorOwns(msg, actorID) {
			return fmt.Errorf("message %s belongs to another user: %w", messageID, common.ErrForbidden)
		}
		from = msg.Status
		msg.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("message_id", messageID.String()).
		Str("from", string(from)).
		Str("to", string(status)).
		Msg("message status changed")
	return msg, nil
}

// Remove deletes a message. Removing it twice fails with ErrNotFound.
func (s *messageService) Remove(ctx context.Context, messageID, actorID uuid.UUID) error {
	_, err := s.Transition(ctx, messageID, actorID, models.MessageStatusDeleted)
	return err
}

func (s *messageService) Counts(ctx context.Context, receiverID uuid.UUID) (map[models.MessageStatus]int64, error) {
	return s.repo.CountByStatus(ctx, receiverID)
}
