package repository

import (
	"context"

	"secreto/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository favorite edge data access interface
type FavoriteRepository interface {
	Add(ctx context.Context, edge *models.FavoriteEdge) error
	Remove(ctx context.Context, ownerID, targetID uuid.UUID) error
	Exists(ctx context.Context, ownerID, targetID uuid.UUID) (bool, error)
	ListTargets(ctx context.Context, ownerID uuid.UUID) ([]models.User, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the edge unless it already exists. Racing inserts of the same
// pair resolve on the primary key, so exactly one row survives.
func (r *favoriteRepository) Add(ctx context.Context, edge *models.FavoriteEdge) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error
}

// Remove deletes the edge. Deleting a missing edge is not an error.
func (r *favoriteRepository) Remove(ctx context.Context, ownerID, targetID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ? AND target_id = ?", ownerID, targetID).
		Delete(&models.FavoriteEdge{}).Error
}

func (r *favoriteRepository) Exists(ctx context.Context, ownerID, targetID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FavoriteEdge{}).
		Where("owner_id = ? AND target_id = ?", ownerID, targetID).
		Count(&count).Error
	return count > 0, err
}

// ListTargets returns the favorited users in the order they were added.
func (r *favoriteRepository) ListTargets(ctx context.Context, ownerID uuid.UUID) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN favorite_edges ON favorite_edges.target_id = users.id").
		Where("favorite_edges.owner_id = ?", ownerID).
		Order("favorite_edges.created_at ASC, favorite_edges.target_id ASC").
		Find(&users).Error
	return users, err
}
