package models

import "time"

// Candidate source constants
const (
	SourceUploaded = "uploaded"
)

// Candidate is one match record: the raw resume text and the structured
// data the LLM extracted from it. Append-only; reprocessing the same
// message in a later cycle creates a second record.
type Candidate struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	UserID         string     `gorm:"column:user_id;index" json:"user_id"`
	Source         string     `gorm:"column:source" json:"source"` // sender address or "uploaded"
	JobPostID      string     `gorm:"column:job_post_id;index" json:"jobpost_id"`
	Name           string     `gorm:"column:name" json:"name"`
	Email          string     `gorm:"column:email" json:"email"`
	Experience     string     `gorm:"column:experience" json:"experience"`
	Education      string     `gorm:"column:education" json:"education"`
	Location       string     `gorm:"column:location" json:"location"`
	Skills         StringList `gorm:"column:skills;type:jsonb" json:"skills"`
	Projects       StringList `gorm:"column:projects;type:jsonb" json:"projects"`
	RawText        string     `gorm:"column:raw_text" json:"raw_text"`
	RawLLMResponse JSONB      `gorm:"column:raw_llm_response;type:jsonb" json:"-"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName specifies the table name for GORM
func (Candidate) TableName() string {
	return "candidates"
}
