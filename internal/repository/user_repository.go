package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hirewise/hirewise/internal/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", result.Error)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", result.Error)
	}
	return &user, nil
}

// List retrieves all users. The ingestion cycle reads the full set in one
// pass; the user count is assumed to fit in memory.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	result := r.db.WithContext(ctx).Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list users: %w", result.Error)
	}
	return users, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// SetGoogleAuth marks the user as having completed provider authorization
func (r *UserRepository) SetGoogleAuth(ctx context.Context, userID string, enabled bool) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"google_auth": enabled,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update google auth flag: %w", result.Error)
	}
	return nil
}

// AssignGeminiKey persists the pooled API key chosen for the user
func (r *UserRepository) AssignGeminiKey(ctx context.Context, userID string, apiKey string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"gemini_api_key": apiKey,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to assign gemini key: %w", result.Error)
	}
	return nil
}

// Counts returns total users, job posts, and candidates for the landing stats
func (r *UserRepository) Counts(ctx context.Context) (users int64, jobPosts int64, candidates int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count users: %w", err)
	}
	if err = r.db.WithContext(ctx).Model(&models.JobPost{}).Count(&jobPosts).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count job posts: %w", err)
	}
	if err = r.db.WithContext(ctx).Model(&models.Candidate{}).Count(&candidates).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return users, jobPosts, candidates, nil
}
