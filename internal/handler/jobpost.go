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

type JobPostHandler struct {
	posts *repository.JobPostRepository
	users *repository.UserRepository
	llm   *gemini.Client
	keys  *keypool.Pool
}

func NewJobPostHandler(posts *repository.JobPostRepository, users *repository.UserRepository, llm *gemini.Client, keys *keypool.Pool) *JobPostHandler {
	return &JobPostHandler{posts: posts, users: users, llm: llm, keys: keys}
}

type jobPostRequest struct {
	Title       string `json:"job_title" binding:"required"`
	Description string `json:"job_description" binding:"required"`
	Location    string `json:"job_location" binding:"required"`
	JobType     string `json:"job_type" binding:"required"`
	Category    string `json:"job_category" binding:"required"`
	Salary      int64  `json:"job_salary" binding:"required"`
}

// Create stores a job post and enriches it with generated publishing
// variants. The post exists even when enrichment fails.
func (h *JobPostHandler) Create(c *gin.Context) {
	userID := c.Param("userId")

	var req jobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	post := &models.JobPost{
		ID:          uuid.New().String(),
		CreatedBy:   userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		JobType:     req.JobType,
		Category:    req.Category,
		Salary:      req.Salary,
	}
	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job post"})
		return
	}

	apiKey, err := h.keys.Assign(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign api key"})
		return
	}

	online, social, details, err := h.llm.GenerateJobPost(c.Request.Context(), apiKey, post)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate job post"})
		return
	}

	if err := h.posts.UpdateGenerated(c.Request.Context(), post.ID, online, social, details); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store generated job post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Job post created successfully",
		"job_post_id": post.ID,
	})
}

// List returns all job posts created by the user.
func (h *JobPostHandler) List(c *gin.Context) {
	posts, err := h.posts.FindByCreator(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_posts": posts})
}

// Get returns a single job post.
func (h *JobPostHandler) Get(c *gin.Context) {
	post, err := h.posts.GetByID(c.Request.Context(), c.Param("postId"))
	if err != nil {
		if errors.Is(err, repository.ErrJobPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_post": post})
}
