package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hirewise/hirewise/internal/models"
)

// IngestProcessor runs the per-user fetch/extract/match/persist steps of
// the ingestion pipeline. The background cycle calls ProcessUser; the
// synchronous upload path calls ProcessDocument directly.
type IngestProcessor struct {
	gateway    MailboxGateway
	extractor  TextExtractor
	matcher    Matcher
	candidates CandidateStore
	jobPosts   JobPostFinder
	keys       KeyAssigner
	window     time.Duration
}

func NewIngestProcessor(
	gateway MailboxGateway,
	extractor TextExtractor,
	matcher Matcher,
	candidates CandidateStore,
	jobPosts JobPostFinder,
	keys KeyAssigner,
	window time.Duration,
) *IngestProcessor {
	return &IngestProcessor{
		gateway:    gateway,
		extractor:  extractor,
		matcher:    matcher,
		candidates: candidates,
		jobPosts:   jobPosts,
		keys:       keys,
		window:     window,
	}
}

// ProcessUser runs one ingestion pass over a user's recent mailbox window.
// A missing credential skips the user silently; a failing message never
// aborts its siblings.
func (p *IngestProcessor) ProcessUser(ctx context.Context, user *models.User) error {
	err := p.FetchNow(ctx, user)
	if errors.Is(err, ErrAuthRequired) {
		log.Printf("Skipping user %s: mailbox not authorized", user.ID)
		return nil
	}
	return err
}

// FetchNow runs the same ingestion pass but propagates every error,
// including a missing credential. Backs the manual fetch endpoint.
func (p *IngestProcessor) FetchNow(ctx context.Context, user *models.User) error {
	cred, err := p.gateway.ResolveCredential(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrAuthRequired) {
			return err
		}
		return fmt.Errorf("failed to resolve credential: %w", err)
	}

	since := time.Now().Add(-p.window)
	messageIDs, err := p.gateway.ListRecent(ctx, cred, since)
	if err != nil {
		return fmt.Errorf("failed to list recent messages: %w", err)
	}

	if len(messageIDs) == 0 {
		return nil
	}
	log.Printf("Found %d recent message(s) for user %s", len(messageIDs), user.ID)

	for _, messageID := range messageIDs {
		if err := p.processMessage(ctx, user, cred, messageID); err != nil {
			log.Printf("Skipping message %s for user %s: %v", messageID, user.ID, err)
		}
	}

	return nil
}

func (p *IngestProcessor) processMessage(ctx context.Context, user *models.User, cred *models.Credential, messageID string) error {
	msg, err := p.gateway.FetchMessage(ctx, cred, messageID)
	if err != nil {
		return fmt.Errorf("failed to fetch message: %w", err)
	}

	// Only PDF-bearing messages are matched; plain-text bodies are discarded
	if len(msg.PDF) == 0 {
		return nil
	}

	text, err := p.extractor.Extract(msg.PDF)
	if err != nil {
		return fmt.Errorf("failed to extract attachment %s: %w", msg.PDFName, err)
	}
	if text == "" {
		return nil
	}

	_, err = p.ProcessDocument(ctx, user, text, msg.Subject, msg.From)
	return err
}

// ProcessDocument matches extracted resume text against the user's job
// posts and appends a match record. Shared by the background cycle and the
// manual upload endpoint; errors propagate to the caller.
func (p *IngestProcessor) ProcessDocument(ctx context.Context, user *models.User, text string, sourceLabel string, source string) (*models.Candidate, error) {
	apiKey, err := p.keys.Assign(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to assign api key: %w", err)
	}

	posts, err := p.jobPosts.FindByCreator(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job posts: %w", err)
	}

	data, rawResponse, err := p.matcher.MatchCandidate(ctx, apiKey, text, sourceLabel, posts)
	if err != nil {
		return nil, fmt.Errorf("failed to match candidate: %w", err)
	}

	candidate := &models.Candidate{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Source:         source,
		JobPostID:      data.JobPostID,
		Name:           data.Name,
		Email:          data.Email,
		Experience:     data.Experience,
		Education:      data.Education,
		Location:       data.Location,
		Skills:         models.StringList(data.Skills),
		Projects:       models.StringList(data.Projects),
		RawText:        text,
		RawLLMResponse: rawResponse,
	}

	if err := p.candidates.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to store candidate: %w", err)
	}

	log.Printf("Matched candidate %q (job post %s) for user %s via %s", data.Name, data.JobPostID, user.ID, source)
	return candidate, nil
}
