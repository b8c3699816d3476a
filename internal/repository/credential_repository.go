package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewise/hirewise/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCredentialNotFound = errors.New("credential not found")

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// GetByUser retrieves the stored credential for a user and provider
func (r *CredentialRepository) GetByUser(ctx context.Context, userID string, provider string) (*models.Credential, error) {
	var cred models.Credential
	result := r.db.WithContext(ctx).First(&cred, "user_id = ? AND provider = ?", userID, provider)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", result.Error)
	}
	return &cred, nil
}

// Upsert stores the credential, overwriting any existing entry for the
// same user and provider (refresh rewrites the whole row)
func (r *CredentialRepository) Upsert(ctx context.Context, cred *models.Credential) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "token_type", "expiry", "updated_at",
		}),
	}).Create(cred)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert credential: %w", result.Error)
	}
	return nil
}
