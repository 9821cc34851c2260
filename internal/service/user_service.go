package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"secreto/backend/internal/cache"
	"secreto/backend/internal/common"
	"secreto/backend/internal/models"
	"secreto/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxNameLength     = 255
	maxBioLength      = 500
)

// UserDirectory is what the message and favorite services need to know about
// users: handle resolution and the public projection.
type UserDirectory interface {
	ResolveHandle(ctx context.Context, handle string) (uuid.UUID, error)
	PublicProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
}

// TokenIssuer creates access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID) (string, error)
}

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Username    string
	Password    string
	Name        *string
	Email       *string
	PhoneNumber *string
}

// ProfileUpdate lists the fields a user may edit. Nil leaves a field as is,
// an empty string clears it.
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	AvatarURL *string
}

// UserService handles accounts and profiles.
type UserService interface {
	UserDirectory
	Signup(ctx context.Context, in SignupInput) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, actorID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, actorID uuid.UUID, upd ProfileUpdate) (*models.User, error)
	GetByHandle(ctx context.Context, handle string) (*models.PublicProfile, error)
	Search(ctx context.Context, query string, page, limit int) ([]models.PublicProfile, int64, error)
}

type userService struct {
	repo     repository.UserRepository
	profiles cache.ProfileCache
	tokens   TokenIssuer
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository, profiles cache.ProfileCache, tokens TokenIssuer) UserService {
	return &userService{
		repo:     repo,
		profiles: profiles,
		tokens:   tokens,
	}
}

// Signup registers a user and returns an access token for them.
func (s *userService) Signup(ctx context.Context, in SignupInput) (string, error) {
	if err := validateHandle(in.Username); err != nil {
		return "", err
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		PasswordHash: string(hashedPassword),
		Name:         emptyToNil(in.Name),
		Email:        emptyToNil(in.Email),
		PhoneNumber:  emptyToNil(in.PhoneNumber),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	log.Ctx(ctx).Info().Str("user_id", user.ID.String()).Msg("user signed up")
	return s.tokens.GenerateToken(user.ID)
}

// Login checks the password and returns a fresh token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", fmt.Errorf("incorrect username or password: %w", common.ErrUnauthorized)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("incorrect username or password: %w", common.ErrUnauthorized)
	}
	return s.tokens.GenerateToken(user.ID)
}

func (s *userService) Me(ctx context.Context, actorID uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, actorID)
}

// UpdateProfile edits the actor's own profile.
func (s *userService) UpdateProfile(ctx context.Context, actorID uuid.UUID, upd ProfileUpdate) (*models.User, error) {
	updates := map[string]any{}
	if upd.Name != nil {
		if utf8.RuneCountInString(*upd.Name) > maxNameLength {
			return nil, fmt.Errorf("name longer than %d characters: %w", maxNameLength, common.ErrInvalidInput)
		}
		updates["name"] = emptyToNil(upd.Name)
	}
	if upd.Bio != nil {
		if utf8.RuneCountInString(*upd.Bio) > maxBioLength {
			return nil, fmt.Errorf("bio longer than %d characters: %w", maxBioLength, common.ErrInvalidInput)
		}
		updates["bio"] = emptyToNil(upd.Bio)
	}
	if upd.AvatarURL != nil {
		if *upd.AvatarURL != "" && !isHTTPURL(*upd.AvatarURL) {
			return nil, fmt.Errorf("avatar_url must be an http(s) URL: %w", common.ErrInvalidInput)
		}
		updates["avatar_url"] = emptyToNil(upd.AvatarURL)
	}

	user, err := s.repo.UpdateProfile(ctx, actorID, updates)
	if err != nil {
		return nil, err
	}
	s.profiles.Invalidate(ctx, user.Username)
	return user, nil
}

// GetByHandle returns the public profile behind a username.
func (s *userService) GetByHandle(ctx context.Context, handle string) (*models.PublicProfile, error) {
	if err := validateHandle(handle); err != nil {
		return nil, err
	}
	if profile, ok := s.profiles.Get(ctx, handle); ok {
		return profile, nil
	}

	user, err := s.repo.FindByUsername(ctx, handle)
	if err != nil {
		return nil, err
	}
	profile := user.PublicProfile()
	s.profiles.Set(ctx, &profile)
	return &profile, nil
}

func (s *userService) Search(ctx context.Context, query string, page, limit int) ([]models.PublicProfile, int64, error) {
	users, total, err := s.repo.Search(ctx, strings.TrimSpace(query), page, limit)
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]models.PublicProfile, len(users))
	for i := range users {
		profiles[i] = users[i].PublicProfile()
	}
	return profiles, total, nil
}

func (s *userService) ResolveHandle(ctx context.Context, handle string) (uuid.UUID, error) {
	profile, err := s.GetByHandle(ctx, handle)
	if err != nil {
		return uuid.Nil, err
	}
	return profile.ID, nil
}

func (s *userService) PublicProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.PublicProfile()
	return &profile, nil
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
