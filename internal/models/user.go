package models

import "time"

// User type constants
const (
	UserTypeEmail  = "email"
	UserTypeGoogle = "google"
)

// User represents a recruiter account
type User struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash *string   `gorm:"column:password_hash"`
	Name         *string   `gorm:"column:name"`
	Picture      *string   `gorm:"column:picture"`
	UserType     string    `gorm:"column:user_type"`
	GoogleAuth   bool      `gorm:"column:google_auth"`
	GeminiAPIKey *string   `gorm:"column:gemini_api_key"` // assigned lazily from the shared pool
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
