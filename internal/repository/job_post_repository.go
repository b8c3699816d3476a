package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hirewise/hirewise/internal/models"
	"gorm.io/gorm"
)

var ErrJobPostNotFound = errors.New("job post not found")

type JobPostRepository struct {
	db *gorm.DB
}

func NewJobPostRepository(db *gorm.DB) *JobPostRepository {
	return &JobPostRepository{db: db}
}

// Create creates a new job post
func (r *JobPostRepository) Create(ctx context.Context, post *models.JobPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create job post: %w", err)
	}
	return nil
}

// GetByID retrieves a single job post
func (r *JobPostRepository) GetByID(ctx context.Context, postID string) (*models.JobPost, error) {
	var post models.JobPost
	result := r.db.WithContext(ctx).First(&post, "id = ?", postID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrJobPostNotFound
		}
		return nil, fmt.Errorf("failed to get job post: %w", result.Error)
	}
	return &post, nil
}

// FindByCreator retrieves all job posts created by a user; the full list is
// embedded into the matching prompt
func (r *JobPostRepository) FindByCreator(ctx context.Context, userID string) ([]models.JobPost, error) {
	var posts []models.JobPost
	result := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&posts)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find job posts: %w", result.Error)
	}
	return posts, nil
}

// UpdateGenerated stores the LLM-generated publishing variants
func (r *JobPostRepository) UpdateGenerated(ctx context.Context, postID string, online, social, details models.JSONB) error {
	result := r.db.WithContext(ctx).Model(&models.JobPost{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"online_platform": online,
			"social_media":    social,
			"details":         details,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update generated job post: %w", result.Error)
	}
	return nil
}
