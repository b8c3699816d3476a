package models

import "time"

// Ranking stores one LLM-generated ranking of all candidates for a job post.
type Ranking struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;index" json:"user_id"`
	JobPostID string    `gorm:"column:job_post_id;index" json:"job_post_id"`
	Ranking   JSONB     `gorm:"column:ranking;type:jsonb" json:"ranking"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Ranking) TableName() string {
	return "rankings"
}

// Screening stores one LLM-generated screening score set for a candidate.
type Screening struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;index" json:"user_id"`
	CandidateID string    `gorm:"column:candidate_id;index" json:"candidate_id"`
	Screening   JSONB     `gorm:"column:screening;type:jsonb" json:"screening"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Screening) TableName() string {
	return "screenings"
}
