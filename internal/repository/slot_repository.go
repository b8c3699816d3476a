package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hirewise/hirewise/internal/models"
	"gorm.io/gorm"
)

var ErrSlotNotFound = errors.New("slot not found")

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Create creates a new interview slot
func (r *SlotRepository) Create(ctx context.Context, slot *models.Slot) error {
	if err := r.db.WithContext(ctx).Create(slot).Error; err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

// AvailableByUser retrieves all open slots for a user
func (r *SlotRepository) AvailableByUser(ctx context.Context, userID string) ([]models.Slot, error) {
	var slots []models.Slot
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND available = ?", userID, true).
		Order("start_time ASC").
		Find(&slots)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list slots: %w", result.Error)
	}
	return slots, nil
}

// FindAvailable retrieves an open slot by its start time
func (r *SlotRepository) FindAvailable(ctx context.Context, userID string, startTime time.Time) (*models.Slot, error) {
	var slot models.Slot
	result := r.db.WithContext(ctx).
		First(&slot, "user_id = ? AND start_time = ? AND available = ?", userID, startTime, true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to find slot: %w", result.Error)
	}
	return &slot, nil
}

// Book marks a slot as taken and records the candidate and the Meet link
func (r *SlotRepository) Book(ctx context.Context, slotID string, candidateEmail string, meetLink string) error {
	result := r.db.WithContext(ctx).Model(&models.Slot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{
			"available":       false,
			"candidate_email": candidateEmail,
			"meet_link":       meetLink,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to book slot: %w", result.Error)
	}
	return nil
}
