package models

import "time"

// Credential provider constants
const (
	ProviderGoogle = "google"
)

// Credential holds provider-issued OAuth token material for one user.
// Overwritten in place on refresh; never read by anything but the gateway.
type Credential struct {
	ID           string     `gorm:"column:id;primaryKey"`
	UserID       string     `gorm:"column:user_id;index"`
	Provider     string     `gorm:"column:provider"`
	AccessToken  string     `gorm:"column:access_token"`
	RefreshToken *string    `gorm:"column:refresh_token"`
	TokenType    *string    `gorm:"column:token_type"`
	Expiry       *time.Time `gorm:"column:expiry"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Credential) TableName() string {
	return "credentials"
}
