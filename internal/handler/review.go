package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewise/hirewise/internal/gemini"
	"github.com/hirewise/hirewise/internal/keypool"
	"github.com/hirewise/hirewise/internal/models"
	"github.com/hirewise/hirewise/internal/repository"
)

type ReviewHandler struct {
	users      *repository.UserRepository
	candidates *repository.CandidateRepository
	posts      *repository.JobPostRepository
	reviews    *repository.ReviewRepository
	llm        *gemini.Client
	keys       *keypool.Pool
}

func NewReviewHandler(
	users *repository.UserRepository,
	candidates *repository.CandidateRepository,
	posts *repository.JobPostRepository,
	reviews *repository.ReviewRepository,
	llm *gemini.Client,
	keys *keypool.Pool,
) *ReviewHandler {
	return &ReviewHandler{
		users:      users,
		candidates: candidates,
		posts:      posts,
		reviews:    reviews,
		llm:        llm,
		keys:       keys,
	}
}

// Ranking generates and stores an ordering of a job post's candidates.
func (h *ReviewHandler) Ranking(c *gin.Context) {
	userID := c.Param("userId")
	postID := c.Param("postId")

	candidates, err := h.candidates.FindByJobPost(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load candidates"})
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No candidates found for this job post"})
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job post"})
		return
	}

	apiKey, err := h.assignKey(c, userID)
	if err != nil {
		return
	}

	ranking, err := h.llm.RankCandidates(c.Request.Context(), apiKey, post, candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate ranking"})
		return
	}

	record := &models.Ranking{
		ID:        uuid.New().String(),
		UserID:    userID,
		JobPostID: postID,
		Ranking:   models.JSONB{"ranking": ranking},
	}
	if err := h.reviews.CreateRanking(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store ranking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ranking_id": record.ID,
		"ranking":    ranking,
	})
}

// Screening generates and stores screening scores for one candidate
// against the job post they were matched to.
func (h *ReviewHandler) Screening(c *gin.Context) {
	userID := c.Param("userId")
	candidateID := c.Param("candidateId")

	candidate, err := h.candidates.GetByID(c.Request.Context(), candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load candidate"})
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), candidate.JobPostID)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job post"})
		return
	}

	apiKey, err := h.assignKey(c, userID)
	if err != nil {
		return
	}

	scores, err := h.llm.ScreenCandidate(c.Request.Context(), apiKey, candidate, post)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate screening"})
		return
	}

	record := &models.Screening{
		ID:          uuid.New().String(),
		UserID:      userID,
		CandidateID: candidateID,
		Screening:   scores,
	}
	if err := h.reviews.CreateScreening(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store screening"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"screening_id": record.ID,
		"screening":    scores,
	})
}

// assignKey loads the user and resolves their LLM key, writing the error
// response itself on failure.
func (h *ReviewHandler) assignKey(c *gin.Context, userID string) (string, error) {
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return "", err
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return "", err
	}

	apiKey, err := h.keys.Assign(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign api key"})
		return "", err
	}
	return apiKey, nil
}
