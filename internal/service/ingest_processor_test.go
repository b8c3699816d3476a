package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hirewise/hirewise/internal/gemini"
	"github.com/hirewise/hirewise/internal/models"
)

type mockGateway struct {
	resolveFunc  func(ctx context.Context, userID string) (*models.Credential, error)
	listFunc     func(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error)
	fetchFunc    func(ctx context.Context, cred *models.Credential, messageID string) (*InboundMessage, error)
	listCalls    int
	fetchCalls   int
	resolveCalls int
}

func (m *mockGateway) ResolveCredential(ctx context.Context, userID string) (*models.Credential, error) {
	m.resolveCalls++
	return m.resolveFunc(ctx, userID)
}

func (m *mockGateway) ListRecent(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error) {
	m.listCalls++
	return m.listFunc(ctx, cred, since)
}

func (m *mockGateway) FetchMessage(ctx context.Context, cred *models.Credential, messageID string) (*InboundMessage, error) {
	m.fetchCalls++
	return m.fetchFunc(ctx, cred, messageID)
}

type mockExtractor struct {
	extractFunc func(data []byte) (string, error)
}

func (m *mockExtractor) Extract(data []byte) (string, error) {
	return m.extractFunc(data)
}

type mockMatcher struct {
	matchFunc func(ctx context.Context, apiKey, resumeText, sourceLabel string, posts []models.JobPost) (*gemini.CandidateData, models.JSONB, error)
	calls     int
}

func (m *mockMatcher) MatchCandidate(ctx context.Context, apiKey, resumeText, sourceLabel string, posts []models.JobPost) (*gemini.CandidateData, models.JSONB, error) {
	m.calls++
	return m.matchFunc(ctx, apiKey, resumeText, sourceLabel, posts)
}

type mockCandidateStore struct {
	createFunc func(ctx context.Context, candidate *models.Candidate) error
	created    []*models.Candidate
}

func (m *mockCandidateStore) Create(ctx context.Context, candidate *models.Candidate) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, candidate); err != nil {
			return err
		}
	}
	m.created = append(m.created, candidate)
	return nil
}

type mockJobPostFinder struct {
	posts []models.JobPost
}

func (m *mockJobPostFinder) FindByCreator(ctx context.Context, userID string) ([]models.JobPost, error) {
	return m.posts, nil
}

type mockKeyAssigner struct{}

func (m *mockKeyAssigner) Assign(ctx context.Context, user *models.User) (string, error) {
	return "test-key", nil
}

func validCredential() *models.Credential {
	return &models.Credential{ID: "cred-1", UserID: "user-123", AccessToken: "token"}
}

func happyMatcher() *mockMatcher {
	return &mockMatcher{
		matchFunc: func(ctx context.Context, apiKey, resumeText, sourceLabel string, posts []models.JobPost) (*gemini.CandidateData, models.JSONB, error) {
			return &gemini.CandidateData{
				JobPostID:  "post-1",
				Name:       "Jane Doe",
				Email:      "jane@email.com",
				Skills:     []string{"Go"},
				Experience: "5 years",
			}, models.JSONB{"candidate": "raw"}, nil
		},
	}
}

func newTestProcessor(gateway *mockGateway, matcher *mockMatcher, store *mockCandidateStore) *IngestProcessor {
	extractor := &mockExtractor{
		extractFunc: func(data []byte) (string, error) {
			return string(data), nil
		},
	}
	return NewIngestProcessor(gateway, extractor, matcher, store, &mockJobPostFinder{}, &mockKeyAssigner{}, 5*time.Minute)
}

func TestProcessUser_NoCredentialSkipsSilently(t *testing.T) {
	gateway := &mockGateway{
		resolveFunc: func(ctx context.Context, userID string) (*models.Credential, error) {
			return nil, ErrAuthRequired
		},
	}
	matcher := happyMatcher()
	store := &mockCandidateStore{}
	processor := newTestProcessor(gateway, matcher, store)

	err := processor.ProcessUser(context.Background(), &models.User{ID: "user-123"})
	if err != nil {
		t.Fatalf("expected nil for unauthorized user, got %v", err)
	}

	if gateway.listCalls != 0 {
		t.Errorf("expected no mailbox listing, got %d calls", gateway.listCalls)
	}
	if matcher.calls != 0 {
		t.Errorf("expected no matcher calls, got %d", matcher.calls)
	}
	if len(store.created) != 0 {
		t.Errorf("expected no records, got %d", len(store.created))
	}
}

func TestProcessUser_MessageWithoutPDF(t *testing.T) {
	gateway := &mockGateway{
		resolveFunc: func(ctx context.Context, userID string) (*models.Credential, error) {
			return validCredential(), nil
		},
		listFunc: func(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error) {
			return []string{"msg-1"}, nil
		},
		fetchFunc: func(ctx context.Context, cred *models.Credential, messageID string) (*InboundMessage, error) {
			return &InboundMessage{ID: messageID, From: "someone@email.com", Subject: "Hello", Body: "no attachment"}, nil
		},
	}
	matcher := happyMatcher()
	store := &mockCandidateStore{}
	processor := newTestProcessor(gateway, matcher, store)

	if err := processor.ProcessUser(context.Background(), &models.User{ID: "user-123"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if matcher.calls != 0 {
		t.Errorf("expected matcher untouched for PDF-less message, got %d calls", matcher.calls)
	}
	if len(store.created) != 0 {
		t.Errorf("expected no records, got %d", len(store.created))
	}
}

func TestProcessUser_HappyPath(t *testing.T) {
	gateway := &mockGateway{
		resolveFunc: func(ctx context.Context, userID string) (*models.Credential, error) {
			return validCredential(), nil
		},
		listFunc: func(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error) {
			return []string{"msg-1"}, nil
		},
		fetchFunc: func(ctx context.Context, cred *models.Credential, messageID string) (*InboundMessage, error) {
			return &InboundMessage{
				ID:      messageID,
				From:    "applicant@email.com",
				Subject: "Resume - Jane Doe",
				PDFName: "resume.pdf",
				PDF:     []byte("Jane Doe, 5 years of Go"),
			}, nil
		},
	}
	matcher := happyMatcher()
	store := &mockCandidateStore{}
	processor := newTestProcessor(gateway, matcher, store)

	if err := processor.ProcessUser(context.Background(), &models.User{ID: "user-123"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(store.created))
	}

	record := store.created[0]
	if record.UserID != "user-123" {
		t.Errorf("expected user id 'user-123', got %q", record.UserID)
	}
	if record.JobPostID != "post-1" {
		t.Errorf("expected job post 'post-1', got %q", record.JobPostID)
	}
	if record.Name != "Jane Doe" {
		t.Errorf("expected name 'Jane Doe', got %q", record.Name)
	}
	if record.RawText != "Jane Doe, 5 years of Go" {
		t.Errorf("expected raw text preserved, got %q", record.RawText)
	}
	if record.Source != "applicant@email.com" {
		t.Errorf("expected sender as source, got %q", record.Source)
	}
}

func TestProcessUser_MatcherFailureContained(t *testing.T) {
	gateway := &mockGateway{
		resolveFunc: func(ctx context.Context, userID string) (*models.Credential, error) {
			return validCredential(), nil
		},
		listFunc: func(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error) {
			return []string{"msg-1", "msg-2"}, nil
		},
		fetchFunc: func(ctx context.Context, cred *models.Credential, messageID string) (*InboundMessage, error) {
			return &InboundMessage{ID: messageID, From: "a@email.com", PDFName: "r.pdf", PDF: []byte("text " + messageID)}, nil
		},
	}

	failures := 0
	matcher := &mockMatcher{
		matchFunc: func(ctx context.Context, apiKey, resumeText, sourceLabel string, posts []models.JobPost) (*gemini.CandidateData, models.JSONB, error) {
			if resumeText == "text msg-1" {
				failures++
				return nil, nil, fmt.Errorf("llm returned status 429")
			}
			return &gemini.CandidateData{JobPostID: "post-1", Name: "Jane Doe", Email: "jane@email.com"}, models.JSONB{}, nil
		},
	}
	store := &mockCandidateStore{}
	processor := newTestProcessor(gateway, matcher, store)

	if err := processor.ProcessUser(context.Background(), &models.User{ID: "user-123"}); err != nil {
		t.Fatalf("expected cycle to continue past matcher failure, got %v", err)
	}

	if failures != 1 {
		t.Errorf("expected one failed match, got %d", failures)
	}
	if len(store.created) != 1 {
		t.Errorf("expected the second message to still produce a record, got %d", len(store.created))
	}
}

func TestProcessUser_ExtractionFailureContained(t *testing.T) {
	gateway := &mockGateway{
		resolveFunc: func(ctx context.Context, userID string) (*models.Credential, error) {
			return validCredential(), nil
		},
		listFunc: func(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error) {
			return []string{"msg-1"}, nil
		},
		fetchFunc: func(ctx context.Context, cred *models.Credential, messageID string) (*InboundMessage, error) {
			return &InboundMessage{ID: messageID, PDFName: "broken.pdf", PDF: []byte("corrupt")}, nil
		},
	}
	matcher := happyMatcher()
	store := &mockCandidateStore{}

	extractor := &mockExtractor{
		extractFunc: func(data []byte) (string, error) {
			return "", fmt.Errorf("failed to extract text")
		},
	}
	processor := NewIngestProcessor(gateway, extractor, matcher, store, &mockJobPostFinder{}, &mockKeyAssigner{}, 5*time.Minute)

	if err := processor.ProcessUser(context.Background(), &models.User{ID: "user-123"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if matcher.calls != 0 {
		t.Errorf("expected no matcher call after failed extraction, got %d", matcher.calls)
	}
	if len(store.created) != 0 {
		t.Errorf("expected no records, got %d", len(store.created))
	}
}

func TestProcessUser_ReprocessingCreatesSecondRecord(t *testing.T) {
	gateway := &mockGateway{
		resolveFunc: func(ctx context.Context, userID string) (*models.Credential, error) {
			return validCredential(), nil
		},
		listFunc: func(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error) {
			return []string{"msg-1"}, nil
		},
		fetchFunc: func(ctx context.Context, cred *models.Credential, messageID string) (*InboundMessage, error) {
			return &InboundMessage{ID: messageID, From: "a@email.com", PDFName: "r.pdf", PDF: []byte("same resume")}, nil
		},
	}
	matcher := happyMatcher()
	store := &mockCandidateStore{}
	processor := newTestProcessor(gateway, matcher, store)

	user := &models.User{ID: "user-123"}
	for i := 0; i < 2; i++ {
		if err := processor.ProcessUser(context.Background(), user); err != nil {
			t.Fatalf("expected no error on pass %d, got %v", i, err)
		}
	}

	// No dedup: the same message seen in two cycles yields two records
	if len(store.created) != 2 {
		t.Errorf("expected two records, got %d", len(store.created))
	}
	if store.created[0].ID == store.created[1].ID {
		t.Error("expected distinct record ids")
	}
}

func TestFetchNow_AuthRequiredPropagates(t *testing.T) {
	gateway := &mockGateway{
		resolveFunc: func(ctx context.Context, userID string) (*models.Credential, error) {
			return nil, ErrAuthRequired
		},
	}
	processor := newTestProcessor(gateway, happyMatcher(), &mockCandidateStore{})

	err := processor.FetchNow(context.Background(), &models.User{ID: "user-123"})
	if !errors.Is(err, ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired on the synchronous path, got %v", err)
	}
}

func TestProcessDocument_StoreErrorPropagates(t *testing.T) {
	store := &mockCandidateStore{
		createFunc: func(ctx context.Context, candidate *models.Candidate) error {
			return fmt.Errorf("connection refused")
		},
	}
	processor := newTestProcessor(&mockGateway{}, happyMatcher(), store)

	_, err := processor.ProcessDocument(context.Background(), &models.User{ID: "user-123"}, "resume text", "resume.pdf", models.SourceUploaded)
	if err == nil {
		t.Fatal("expected store error to propagate, got nil")
	}
}

func TestProcessDocument_SetsUploadedSource(t *testing.T) {
	store := &mockCandidateStore{}
	processor := newTestProcessor(&mockGateway{}, happyMatcher(), store)

	record, err := processor.ProcessDocument(context.Background(), &models.User{ID: "user-123"}, "resume text", "resume.pdf", models.SourceUploaded)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if record.Source != models.SourceUploaded {
		t.Errorf("expected source %q, got %q", models.SourceUploaded, record.Source)
	}
	if len(store.created) != 1 {
		t.Errorf("expected one record, got %d", len(store.created))
	}
}
