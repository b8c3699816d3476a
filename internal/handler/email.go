package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirewise/hirewise/internal/mailbox"
	"github.com/hirewise/hirewise/internal/repository"
	"github.com/hirewise/hirewise/internal/service"
)

type EmailHandler struct {
	gateway   *mailbox.Gateway
	users     *repository.UserRepository
	processor *service.IngestProcessor
}

func NewEmailHandler(gateway *mailbox.Gateway, users *repository.UserRepository, processor *service.IngestProcessor) *EmailHandler {
	return &EmailHandler{gateway: gateway, users: users, processor: processor}
}

// AuthenticateURL returns the Google consent URL for mailbox access.
func (h *EmailHandler) AuthenticateURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"auth_url": h.gateway.AuthCodeURL(c.Query("state"))})
}

type authenticateRequest struct {
	UserID string `json:"userId" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// Authenticate exchanges an authorization code and stores the tokens.
func (h *EmailHandler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := h.users.GetByID(c.Request.Context(), req.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	token, err := h.gateway.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to obtain access token"})
		return
	}

	if err := h.gateway.StoreToken(c.Request.Context(), req.UserID, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store credential"})
		return
	}

	if err := h.users.SetGoogleAuth(c.Request.Context(), req.UserID, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

type sendEmailRequest struct {
	UserID  string `json:"userId" binding:"required"`
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SendEmail sends a mail from the user's own mailbox.
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cred, err := h.gateway.ResolveCredential(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrAuthRequired) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credentials not found. Authenticate first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve credential"})
		return
	}

	if err := h.gateway.SendEmail(c.Request.Context(), cred, req.To, req.Subject, req.Body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent!"})
}

// FetchEmails runs one synchronous ingestion pass for the user. Unlike
// the background cycle, errors surface to the caller.
func (h *EmailHandler) FetchEmails(c *gin.Context) {
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

	if err := h.processor.FetchNow(c.Request.Context(), user); err != nil {
		if errors.Is(err, service.ErrAuthRequired) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credentials not found. Authenticate first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process emails"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Emails processed"})
}
