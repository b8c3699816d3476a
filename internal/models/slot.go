package models

import "time"

// Slot is an interview slot offered by a recruiter. Booking marks it
// unavailable and attaches the candidate and the Meet link.
type Slot struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	UserID         string    `gorm:"column:user_id;index" json:"user_id"`
	StartTime      time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime        time.Time `gorm:"column:end_time" json:"end_time"`
	Available      bool      `gorm:"column:available" json:"available"`
	CandidateEmail *string   `gorm:"column:candidate_email" json:"candidate_email,omitempty"`
	MeetLink       *string   `gorm:"column:meet_link" json:"meet_link,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName specifies the table name for GORM
func (Slot) TableName() string {
	return "slots"
}
