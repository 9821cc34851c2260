package service

import (
	"strings"
	"sync"

	"secreto/backend/internal/common"
	"secreto/backend/internal/models"

	"github.com/google/uuid"
)

func (s *ServiceSuite) TestSubmitLandsInInbox() {
	bob := s.user("bob")

	msg := s.submit("bob", "  hello  ")
	s.Equal(models.MessageStatusInbox, msg.Status)
	s.Equal("hello", msg.Content)
	s.Equal(bob.ID, msg.ReceiverID)
	s.Nil(msg.SenderID)

	inbox := s.list(bob.ID, models.MessageStatusInbox)
	s.Require().Len(inbox, 1)
	s.Equal(msg.ID, inbox[0].ID)
	s.Equal("hello", inbox[0].Content)
	s.Equal(models.MessageStatusInbox, inbox[0].Status)
}

func (s *ServiceSuite) TestSubmitRecordsKnownSender() {
	s.user("bob")
	alice := s.user("alice")

	msg, err := s.messages.Submit(s.ctx, "bob", "hi bob", &alice.ID)
	s.Require().NoError(err)
	s.Require().NotNil(msg.SenderID)
	s.Equal(alice.ID, *msg.SenderID)

	nilSender := uuid.Nil
	msg, err = s.messages.Submit(s.ctx, "bob", "anon", &nilSender)
	s.Require().NoError(err)
	s.Nil(msg.SenderID)
}

func (s *ServiceSuite) TestSubmitValidation() {
	s.user("bob")

	_, err := s.messages.Submit(s.ctx, "nobody", "hello", nil)
	s.ErrorIs(err, common.ErrNotFound)

	_, err = s.messages.Submit(s.ctx, "bob", "   ", nil)
	s.ErrorIs(err, common.ErrInvalidInput)

	_, err = s.messages.Submit(s.ctx, "bob", strings.Repeat("x", 21), nil)
	s.ErrorIs(err, common.ErrInvalidInput)

	// The limit counts characters, not bytes.
	_, err = s.messages.Submit(s.ctx, "bob", strings.Repeat("é", 20), nil)
	s.NoError(err)

	_, err = s.messages.Submit(s.ctx, "no spaces allowed", "hello", nil)
	s.ErrorIs(err, common.ErrInvalidInput)
}

func (s *ServiceSuite) TestListNewestFirst() {
	bob := s.user("bob")
	first := s.submit("bob", "first")
	second := s.submit("bob", "second")
	third := s.submit("bob", "third")

	s.Equal([]uuid.UUID{third.ID, second.ID, first.ID}, ids(s.list(bob.ID, models.MessageStatusInbox)))
}

func (s *ServiceSuite) TestListRejectsUnknownStatus() {
	bob := s.user("bob")

	_, err := s.messages.List(s.ctx, bob.ID, "archived")
	s.ErrorIs(err, common.ErrInvalidInput)
}

func (s *ServiceSuite) TestTransitionMovesBetweenBuckets() {
	bob := s.user("bob")
	msg := s.submit("bob", "hello")

	for _, target := range []models.MessageStatus{
		models.MessageStatusPublic,
		models.MessageStatusFavorite,
		models.MessageStatusInbox,
		models.MessageStatusPublic,
	} {
		updated, err := s.messages.Transition(s.ctx, msg.ID, bob.ID, target)
		s.Require().NoError(err)
		s.Equal(target, updated.Status)

		for _, bucket := range models.ListableStatuses {
			listed := ids(s.list(bob.ID, bucket))
			if bucket == target {
				s.Contains(listed, msg.ID, "expected message in %s", bucket)
			} else {
				s.NotContains(listed, msg.ID, "unexpected message in %s", bucket)
			}
		}
	}
}

func (s *ServiceSuite) TestTransitionToSameStatusIsNoop() {
	bob := s.user("bob")
	msg := s.submit("bob", "hello")

	updated, err := s.messages.Transition(s.ctx, msg.ID, bob.ID, models.MessageStatusInbox)
	s.Require().NoError(err)
	s.Equal(models.MessageStatusInbox, updated.Status)
}

func (s *ServiceSuite) TestTransitionRejectsUnknownStatus() {
	bob := s.user("bob")
	msg := s.submit("bob", "hello")

	_, err := s.messages.Transition(s.ctx, msg.ID, bob.ID, "archived")
	s.ErrorIs(err, common.ErrInvalidInput)
	s.Equal(models.MessageStatusInbox, s.status(msg.ID))
}

func (s *ServiceSuite) TestOnlyReceiverMayMutate() {
	s.user("bob")
	mallory := s.user("mallory")
	msg := s.submit("bob", "hello")

	for _, actor := range []uuid.UUID{mallory.ID, uuid.Nil, uuid.New()} {
		_, err := s.messages.Transition(s.ctx, msg.ID, actor, models.MessageStatusPublic)
		s.ErrorIs(err, common.ErrForbidden)

		err = s.messages.Remove(s.ctx, msg.ID, actor)
		s.ErrorIs(err, common.ErrForbidden)
	}
	s.Equal(models.MessageStatusInbox, s.status(msg.ID))
}

func (s *ServiceSuite) TestSenderCannotMutate() {
	s.user("bob")
	alice := s.user("alice")
	msg, err := s.messages.Submit(s.ctx, "bob", "hello", &alice.ID)
	s.Require().NoError(err)

	_, err = s.messages.Transition(s.ctx, msg.ID, alice.ID, models.MessageStatusPublic)
	s.ErrorIs(err, common.ErrForbidden)
}

func (s *ServiceSuite) TestRemoveIsTerminal() {
	bob := s.user("bob")
	msg := s.submit("bob", "hello")
	_, err := s.messages.Transition(s.ctx, msg.ID, bob.ID, models.MessageStatusPublic)
	s.Require().NoError(err)

	s.Require().NoError(s.messages.Remove(s.ctx, msg.ID, bob.ID))

	s.ErrorIs(s.messages.Remove(s.ctx, msg.ID, bob.ID), common.ErrNotFound)
	for _, target := range []models.MessageStatus{
		models.MessageStatusInbox,
		models.MessageStatusPublic,
		models.MessageStatusFavorite,
		models.MessageStatusDeleted,
	} {
		_, err := s.messages.Transition(s.ctx, msg.ID, bob.ID, target)
		s.ErrorIs(err, common.ErrNotFound)
	}

	for _, bucket := range []models.MessageStatus{"", models.MessageStatusInbox, models.MessageStatusPublic, models.MessageStatusFavorite, models.MessageStatusDeleted} {
		s.Empty(s.list(bob.ID, bucket), "bucket %q", bucket)
	}
	public, err := s.messages.PublicList(s.ctx, "bob")
	s.Require().NoError(err)
	s.Empty(public)
}

func (s *ServiceSuite) TestTransitionToDeletedRemoves() {
	bob := s.user("bob")
	msg := s.submit("bob", "hello")

	_, err := s.messages.Transition(s.ctx, msg.ID, bob.ID, models.MessageStatusDeleted)
	s.Require().NoError(err)
	s.Empty(s.list(bob.ID, ""))
}

func (s *ServiceSuite) TestTransitionUnknownMessage() {
	bob := s.user("bob")

	_, err := s.messages.Transition(s.ctx, uuid.New(), bob.ID, models.MessageStatusPublic)
	s.ErrorIs(err, common.ErrNotFound)
}

func (s *ServiceSuite) TestPublicScenario() {
	bob := s.user("bob")
	m := s.submit("bob", "hello")

	_, err := s.messages.Transition(s.ctx, m.ID, bob.ID, models.MessageStatusPublic)
	s.Require().NoError(err)

	public, err := s.messages.PublicList(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{m.ID}, ids(public))
	s.NotContains(ids(s.list(bob.ID, models.MessageStatusInbox)), m.ID)
}

func (s *ServiceSuite) TestPublicListUnknownHandle() {
	_, err := s.messages.PublicList(s.ctx, "ghost")
	s.ErrorIs(err, common.ErrNotFound)
}

func (s *ServiceSuite) TestCounts() {
	bob := s.user("bob")
	a := s.submit("bob", "a")
	b := s.submit("bob", "b")
	s.submit("bob", "c")
	_, err := s.messages.Transition(s.ctx, a.ID, bob.ID, models.MessageStatusFavorite)
	s.Require().NoError(err)
	s.Require().NoError(s.messages.Remove(s.ctx, b.ID, bob.ID))

	counts, err := s.messages.Counts(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), counts[models.MessageStatusInbox])
	s.Equal(int64(0), counts[models.MessageStatusPublic])
	s.Equal(int64(1), counts[models.MessageStatusFavorite])
	_, hasDeleted := counts[models.MessageStatusDeleted]
	s.False(hasDeleted)
}

func (s *ServiceSuite) TestConcurrentTransitionsSerialise() {
	bob := s.user("bob")
	msg := s.submit("bob", "hello")
	targets := []models.MessageStatus{models.MessageStatusPublic, models.MessageStatusFavorite}

	var wg sync.WaitGroup
	errs := make([]error, len(targets))
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target models.MessageStatus) {
			defer wg.Done()
			_, errs[i] = s.messages.Transition(s.ctx, msg.ID, bob.ID, target)
		}(i, target)
	}
	wg.Wait()

	for _, err := range errs {
		s.NoError(err)
	}
	s.Contains(targets, s.status(msg.ID))
}
