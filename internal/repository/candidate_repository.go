package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewise/hirewise/internal/models"
	"gorm.io/gorm"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create appends a new match record. No uniqueness constraint: reprocessing
// the same message produces a second record.
func (r *CandidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// GetByID retrieves a single candidate record
func (r *CandidateRepository) GetByID(ctx context.Context, candidateID string) (*models.Candidate, error) {
	var candidate models.Candidate
	result := r.db.WithContext(ctx).First(&candidate, "id = ?", candidateID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", result.Error)
	}
	return &candidate, nil
}

// FindByJobPost retrieves all candidates matched against a job post
func (r *CandidateRepository) FindByJobPost(ctx context.Context, jobPostID string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	result := r.db.WithContext(ctx).
		Where("job_post_id = ?", jobPostID).
		Order("created_at ASC").
		Find(&candidates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", result.Error)
	}
	return candidates, nil
}

// FindByUser retrieves all match records owned by a user
func (r *CandidateRepository) FindByUser(ctx context.Context, userID string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&candidates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", result.Error)
	}
	return candidates, nil
}
