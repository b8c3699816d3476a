package service

import (
	"context"
	"errors"
	"time"

	"github.com/hirewise/hirewise/internal/gemini"
	"github.com/hirewise/hirewise/internal/models"
)

// ErrAuthRequired signals that a user has no usable mailbox credential.
// Expected and frequent; the cycle skips the user without treating it as
// an error.
var ErrAuthRequired = errors.New("mailbox authorization required")

// InboundMessage is a single fetched mailbox entry. Transient: processed
// and discarded, never persisted.
type InboundMessage struct {
	ID      string
	From    string
	Subject string
	Body    string
	PDFName string
	PDF     []byte // first .pdf attachment only
}

// MailboxGateway interface for mail provider operations
type MailboxGateway interface {
	ResolveCredential(ctx context.Context, userID string) (*models.Credential, error)
	ListRecent(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error)
	FetchMessage(ctx context.Context, cred *models.Credential, messageID string) (*InboundMessage, error)
}

// TextExtractor interface for document-to-text conversion
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// Matcher interface for LLM-backed candidate extraction and job matching
type Matcher interface {
	MatchCandidate(ctx context.Context, apiKey string, resumeText string, sourceLabel string, posts []models.JobPost) (*gemini.CandidateData, models.JSONB, error)
}

// CandidateStore interface for persisting match records
type CandidateStore interface {
	Create(ctx context.Context, candidate *models.Candidate) error
}

// JobPostFinder interface for loading a user's job posts into the prompt
type JobPostFinder interface {
	FindByCreator(ctx context.Context, userID string) ([]models.JobPost, error)
}

// KeyAssigner interface for the pooled LLM API-key allocation
type KeyAssigner interface {
	Assign(ctx context.Context, user *models.User) (string, error)
}
