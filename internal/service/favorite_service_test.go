package service

import (
	"secreto/backend/internal/common"
	"secreto/backend/internal/models"

	"github.com/google/uuid"
)

func (s *ServiceSuite) edgeCount() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&models.FavoriteEdge{}).Count(&n).Error)
	return n
}

func (s *ServiceSuite) TestFavoriteAddTwiceKeepsOneEdge() {
	alice := s.user("alice")
	bob := s.user("bob")

	s.Require().NoError(s.favorites.Add(s.ctx, alice.ID, bob.ID))
	s.Require().NoError(s.favorites.Add(s.ctx, alice.ID, bob.ID))
	s.Equal(int64(1), s.edgeCount())

	ok, err := s.favorites.IsFavorited(s.ctx, alice.ID, bob.ID)
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(s.favorites.Remove(s.ctx, alice.ID, bob.ID))
	ok, err = s.favorites.IsFavorited(s.ctx, alice.ID, bob.ID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestFavoriteSelfIsInvalid() {
	alice := s.user("alice")

	s.ErrorIs(s.favorites.Add(s.ctx, alice.ID, alice.ID), common.ErrInvalidInput)
	s.Zero(s.edgeCount())
}

func (s *ServiceSuite) TestFavoriteUnknownTarget() {
	alice := s.user("alice")

	s.ErrorIs(s.favorites.Add(s.ctx, alice.ID, uuid.New()), common.ErrNotFound)
	s.Zero(s.edgeCount())
}

func (s *ServiceSuite) TestFavoriteRequiresActor() {
	bob := s.user("bob")

	s.ErrorIs(s.favorites.Add(s.ctx, uuid.Nil, bob.ID), common.ErrForbidden)
	s.ErrorIs(s.favorites.Remove(s.ctx, uuid.Nil, bob.ID), common.ErrForbidden)
}

func (s *ServiceSuite) TestFavoriteRemoveMissingEdgeSucceeds() {
	alice := s.user("alice")
	bob := s.user("bob")

	s.NoError(s.favorites.Remove(s.ctx, alice.ID, bob.ID))
}

func (s *ServiceSuite) TestFavoriteEdgeIsDirected() {
	alice := s.user("alice")
	bob := s.user("bob")
	s.Require().NoError(s.favorites.Add(s.ctx, alice.ID, bob.ID))

	ok, err := s.favorites.IsFavorited(s.ctx, bob.ID, alice.ID)
	s.Require().NoError(err)
	s.False(ok)

	list, err := s.favorites.ListTargets(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *ServiceSuite) TestFavoriteListScenario() {
	alice := s.user("alice")
	bob := s.user("bob")

	s.Require().NoError(s.favorites.Add(s.ctx, alice.ID, bob.ID))
	s.Require().NoError(s.favorites.Add(s.ctx, alice.ID, bob.ID))

	list, err := s.favorites.ListTargets(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(bob.ID, list[0].ID)
	s.Equal("bob", list[0].Username)

	s.Require().NoError(s.favorites.Remove(s.ctx, alice.ID, bob.ID))
	list, err = s.favorites.ListTargets(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *ServiceSuite) TestFavoriteIndependentOfMessageStatus() {
	alice := s.user("alice")
	bob := s.user("bob")
	msg := s.submit("bob", "hello")
	_, err := s.messages.Transition(s.ctx, msg.ID, bob.ID, models.MessageStatusFavorite)
	s.Require().NoError(err)

	list, err := s.favorites.ListTargets(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Empty(list)

	s.Require().NoError(s.favorites.Add(s.ctx, alice.ID, bob.ID))
	s.Equal(models.MessageStatusFavorite, s.status(msg.ID))
}
