package service

import (
	"secreto/backend/internal/common"
	"secreto/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func (s *ServiceSuite) TestSignupAndLogin() {
	token, err := s.users.Signup(s.ctx, SignupInput{
		Username: "bob",
		Password: "password123",
		Name:     strPtr("Bob"),
		Email:    strPtr("  "),
	})
	s.Require().NoError(err)

	userID, err := s.tokens.VerifyToken(token)
	s.Require().NoError(err)

	me, err := s.users.Me(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal("bob", me.Username)
	s.Require().NotNil(me.Name)
	s.Equal("Bob", *me.Name)
	s.Nil(me.Email)
	s.NotEqual("password123", me.PasswordHash)

	token, err = s.users.Login(s.ctx, "bob", "password123")
	s.Require().NoError(err)
	loggedIn, err := s.tokens.VerifyToken(token)
	s.Require().NoError(err)
	s.Equal(userID, loggedIn)
}

func (s *ServiceSuite) TestSignupValidation() {
	_, err := s.users.Signup(s.ctx, SignupInput{Username: "bo", Password: "password123"})
	s.ErrorIs(err, common.ErrInvalidInput)

	_, err = s.users.Signup(s.ctx, SignupInput{Username: "bob", Password: "short"})
	s.ErrorIs(err, common.ErrInvalidInput)

	_, err = s.users.Signup(s.ctx, SignupInput{Username: "bob", Password: "password123"})
	s.Require().NoError(err)
	_, err = s.users.Signup(s.ctx, SignupInput{Username: "bob", Password: "password456"})
	s.ErrorIs(err, common.ErrConflict)
}

func (s *ServiceSuite) TestLoginFailures() {
	s.user("bob")

	_, err := s.users.Login(s.ctx, "bob", "wrong-password")
	s.ErrorIs(err, common.ErrUnauthorized)

	_, err = s.users.Login(s.ctx, "ghost", "password123")
	s.ErrorIs(err, common.ErrUnauthorized)
}

func (s *ServiceSuite) TestGetByHandleUsesCache() {
	bob := s.user("bob")

	profile, err := s.users.GetByHandle(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(bob.ID, profile.ID)

	cached, ok := s.profiles.Get(s.ctx, "bob")
	s.Require().True(ok)
	s.Equal(bob.ID, cached.ID)

	_, err = s.users.GetByHandle(s.ctx, "ghost")
	s.ErrorIs(err, common.ErrNotFound)
}

func (s *ServiceSuite) TestUpdateProfileInvalidatesCache() {
	bob := s.user("bob")
	_, err := s.users.GetByHandle(s.ctx, "bob")
	s.Require().NoError(err)

	updated, err := s.users.UpdateProfile(s.ctx, bob.ID, ProfileUpdate{
		Bio:       strPtr("ask me anything"),
		AvatarURL: strPtr("https://cdn.example.com/bob.png"),
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.Bio)
	s.Equal("ask me anything", *updated.Bio)

	_, ok := s.profiles.Get(s.ctx, "bob")
	s.False(ok)

	profile, err := s.users.GetByHandle(s.ctx, "bob")
	s.Require().NoError(err)
	s.Require().NotNil(profile.Bio)
	s.Equal("ask me anything", *profile.Bio)

	cleared, err := s.users.UpdateProfile(s.ctx, bob.ID, ProfileUpdate{Bio: strPtr("")})
	s.Require().NoError(err)
	s.Nil(cleared.Bio)
	s.NotNil(cleared.AvatarURL)
}

func (s *ServiceSuite) TestUpdateProfileValidation() {
	bob := s.user("bob")

	_, err := s.users.UpdateProfile(s.ctx, bob.ID, ProfileUpdate{AvatarURL: strPtr("javascript:alert(1)")})
	s.ErrorIs(err, common.ErrInvalidInput)

	long := make([]byte, maxBioLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = s.users.UpdateProfile(s.ctx, bob.ID, ProfileUpdate{Bio: strPtr(string(long))})
	s.ErrorIs(err, common.ErrInvalidInput)
}

func (s *ServiceSuite) TestSearch() {
	s.user("bobby")
	s.user("bob")
	s.user("alice")

	profiles, total, err := s.users.Search(s.ctx, " bob ", 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Equal([]string{"bob", "bobby"}, usernames(profiles))
}

func usernames(profiles []models.PublicProfile) []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.Username
	}
	return out
}
