package repository

import (
	"context"
	"fmt"

	"github.com/hirewise/hirewise/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateRanking stores a generated candidate ranking
func (r *ReviewRepository) CreateRanking(ctx context.Context, ranking *models.Ranking) error {
	if err := r.db.WithContext(ctx).Create(ranking).Error; err != nil {
		return fmt.Errorf("failed to create ranking: %w", err)
	}
	return nil
}

// CreateScreening stores a generated candidate screening
func (r *ReviewRepository) CreateScreening(ctx context.Context, screening *models.Screening) error {
	if err := r.db.WithContext(ctx).Create(screening).Error; err != nil {
		return fmt.Errorf("failed to create screening: %w", err)
	}
	return nil
}
