package models

import "time"

// JobPost represents a recruiter's job posting. The generated JSONB sections
// are filled in by the LLM after creation.
type JobPost struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	CreatedBy      string    `gorm:"column:created_by;index" json:"created_by"`
	Title          string    `gorm:"column:title" json:"job_title"`
	Description    string    `gorm:"column:description" json:"job_description"`
	Location       string    `gorm:"column:location" json:"job_location"`
	JobType        string    `gorm:"column:job_type" json:"job_type"`
	Category       string    `gorm:"column:category" json:"job_category"`
	Salary         int64     `gorm:"column:salary" json:"job_salary"`
	OnlinePlatform JSONB     `gorm:"column:online_platform;type:jsonb" json:"online_job_platform,omitempty"`
	SocialMedia    JSONB     `gorm:"column:social_media;type:jsonb" json:"facebook_linkedin,omitempty"`
	Details        JSONB     `gorm:"column:details;type:jsonb" json:"details,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName specifies the table name for GORM
func (JobPost) TableName() string {
	return "job_posts"
}
