package service

import (
	"context"
	"fmt"

	"secreto/backend/internal/common"
	"secreto/backend/internal/models"
	"secreto/backend/internal/repository"

	"github.com/google/uuid"
)

// FavoriteService manages the directed favorite edges between users.
// It has nothing to do with the favorite message status.
type FavoriteService interface {
	Add(ctx context.Context, actorID, targetID uuid.UUID) error
	Remove(ctx context.Context, actorID, targetID uuid.UUID) error
	ListTargets(ctx context.Context, actorID uuid.UUID) ([]models.PublicProfile, error)
	IsFavorited(ctx context.Context, actorID, targetID uuid.UUID) (bool, error)
}

type favoriteService struct {
	repo  repository.FavoriteRepository
	users UserDirectory
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(repo repository.FavoriteRepository, users UserDirectory) FavoriteService {
	return &favoriteService{
		repo:  repo,
		users: users,
	}
}

// Add marks targetID as a favorite of the actor. Adding twice is a no-op.
func (s *favoriteService) Add(ctx context.Context, actorID, targetID uuid.UUID) error {
	edge := &models.FavoriteEdge{OwnerID: actorID, TargetID: targetID}
	if !actorOwns(edge, actorID) {
		return fmt.Errorf("anonymous users have no favorites: %w", common.ErrForbidden)
	}
	if actorID == targetID {
		return fmt.Errorf("cannot favorite yourself: %w", common.ErrInvalidInput)
	}
	if _, err := s.users.PublicProfile(ctx, targetID); err != nil {
		return err
	}
	return s.repo.Add(ctx, edge)
}

// Remove drops the edge if present. Removing a missing edge is a no-op.
func (s *favoriteService) Remove(ctx context.Context, actorID, targetID uuid.UUID) error {
	edge := &models.FavoriteEdge{OwnerID: actorID, TargetID: targetID}
	if !actorOwns(edge, actorID) {
		return fmt.Errorf("anonymous users have no favorites: %w", common.ErrForbidden)
	}
	return s.repo.Remove(ctx, edge.OwnerID, edge.TargetID)
}

// ListTargets returns the public profiles of the actor's favorites in the
// order they were added.
func (s *favoriteService) ListTargets(ctx context.Context, actorID uuid.UUID) ([]models.PublicProfile, error) {
	users, err := s.repo.ListTargets(ctx, actorID)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.PublicProfile, len(users))
	for i := range users {
		profiles[i] = users[i].PublicProfile()
	}
	return profiles, nil
}

func (s *favoriteService) IsFavorited(ctx context.Context, actorID, targetID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, actorID, targetID)
}
