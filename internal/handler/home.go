package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirewise/hirewise/internal/keypool"
	"github.com/hirewise/hirewise/internal/repository"
)

type HomeHandler struct {
	users *repository.UserRepository
	posts *repository.JobPostRepository
	keys  *keypool.Pool
}

func NewHomeHandler(users *repository.UserRepository, posts *repository.JobPostRepository, keys *keypool.Pool) *HomeHandler {
	return &HomeHandler{users: users, posts: posts, keys: keys}
}

// Status reports service liveness.
func (h *HomeHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "running"})
}

// Landing returns the public landing-page totals.
func (h *HomeHandler) Landing(c *gin.Context) {
	users, jobPosts, candidates, err := h.users.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Welcome to HireWise",
		"total_hrs":        users,
		"total_jobposts":   jobPosts,
		"total_candidates": candidates,
	})
}

// Home returns the user profile with their job posts. An LLM key is
// assigned here on first visit so later matching calls find one in place.
func (h *HomeHandler) Home(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	if _, err := h.keys.Assign(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign api key"})
		return
	}

	posts, err := h.posts.FindByCreator(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"name":        user.Name,
			"picture":     user.Picture,
			"user_type":   user.UserType,
			"google_auth": user.GoogleAuth,
		},
		"jobposts": posts,
	})
}
