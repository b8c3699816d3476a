package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewise/hirewise/internal/calendar"
	"github.com/hirewise/hirewise/internal/mailbox"
	"github.com/hirewise/hirewise/internal/models"
	"github.com/hirewise/hirewise/internal/repository"
	"github.com/hirewise/hirewise/internal/service"
)

type InterviewHandler struct {
	users       *repository.UserRepository
	candidates  *repository.CandidateRepository
	posts       *repository.JobPostRepository
	slots       *repository.SlotRepository
	gateway     *mailbox.Gateway
	calendar    *calendar.Client
	frontendURL string
}

func NewInterviewHandler(
	users *repository.UserRepository,
	candidates *repository.CandidateRepository,
	posts *repository.JobPostRepository,
	slots *repository.SlotRepository,
	gateway *mailbox.Gateway,
	cal *calendar.Client,
	frontendURL string,
) *InterviewHandler {
	return &InterviewHandler{
		users:       users,
		candidates:  candidates,
		posts:       posts,
		slots:       slots,
		gateway:     gateway,
		calendar:    cal,
		frontendURL: frontendURL,
	}
}

// Invite mails the candidate an interview invitation with the booking link.
func (h *InterviewHandler) Invite(c *gin.Context) {
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

	if !strings.Contains(candidate.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate email address"})
		return
	}

	jobTitle := "the position"
	if post, err := h.posts.GetByID(c.Request.Context(), candidate.JobPostID); err == nil {
		jobTitle = post.Title
	}

	body := inviteEmailBody(candidate.Name, jobTitle, h.frontendURL, userID)

	cred, err := h.gateway.ResolveCredential(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAuthRequired) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credentials not found. Authenticate first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve credential"})
		return
	}

	if err := h.gateway.SendEmail(c.Request.Context(), cred, candidate.Email, "Invitation for Interview", body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Email sent!",
		"email_body": body,
	})
}

type createSlotsRequest struct {
	StartTimes []string `json:"start_times" binding:"required"`
	Duration   int      `json:"duration"`
}

// CreateSlots opens interview slots starting at each given time.
func (h *InterviewHandler) CreateSlots(c *gin.Context) {
	userID := c.Param("userId")

	var req createSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Duration <= 0 {
		req.Duration = 60
	}

	slots := make([]models.Slot, 0, len(req.StartTimes))
	for _, startStr := range req.StartTimes {
		start, err := parseSlotTime(startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid date format: %s", startStr)})
			return
		}

		slot := models.Slot{
			ID:        uuid.New().String(),
			UserID:    userID,
			StartTime: start,
			EndTime:   start.Add(time.Duration(req.Duration) * time.Minute),
			Available: true,
		}
		if err := h.slots.Create(c.Request.Context(), &slot); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slot"})
			return
		}
		slots = append(slots, slot)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Slots created!",
		"slots":   slots,
	})
}

// AvailableSlots lists the user's open slots. Public: candidates hit this
// from the booking page.
func (h *InterviewHandler) AvailableSlots(c *gin.Context) {
	slots, err := h.slots.AvailableByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load slots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type bookSlotRequest struct {
	CandidateEmail    string `json:"candidate_email" binding:"required"`
	SelectedStartTime string `json:"selected_start_time" binding:"required"`
}

// BookSlot books an open slot for a candidate: a calendar event with a
// Meet link is created and the recruiter is notified by mail.
func (h *InterviewHandler) BookSlot(c *gin.Context) {
	userID := c.Param("userId")

	var req bookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	start, err := parseSlotTime(req.SelectedStartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid date format: %s", req.SelectedStartTime)})
		return
	}

	slot, err := h.slots.FindAvailable(c.Request.Context(), userID, start)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Selected slot is not available or already booked."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load slot"})
		return
	}

	cred, err := h.gateway.ResolveCredential(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAuthRequired) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credentials not found. Authenticate first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve credential"})
		return
	}

	meetLink, err := h.calendar.CreateInterviewEvent(c.Request.Context(), cred, slot.StartTime, slot.EndTime, req.CandidateEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create calendar event"})
		return
	}

	if err := h.slots.Book(c.Request.Context(), slot.ID, req.CandidateEmail, meetLink); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book slot"})
		return
	}

	// Notify the recruiter; booking already succeeded, so a mail failure
	// only surfaces as an error without undoing the slot.
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interviewer not found."})
		return
	}

	body := bookingNotificationBody(req.CandidateEmail, meetLink, slot.StartTime, slot.EndTime)
	if err := h.gateway.SendEmail(c.Request.Context(), cred, user.Email, "Interview Slot Booked", body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Slot booked!",
		"meet_link": meetLink,
	})
}

// parseSlotTime accepts RFC 3339 with or without a zone offset.
func parseSlotTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

func inviteEmailBody(candidateName, jobTitle, frontendURL, userID string) string {
	return fmt.Sprintf(`Dear %s,

We are pleased to invite you for an interview for the position of %s at our company.

Please book a slot for the interview by visiting the following link:

%s/book-slot/%s

Best Regards,
HR Team`, candidateName, jobTitle, frontendURL, userID)
}

func bookingNotificationBody(candidateEmail, meetLink string, start, end time.Time) string {
	return fmt.Sprintf(`Dear Interviewer,

The slot for the interview has been successfully booked by the candidate with email: %s.
The interview will be conducted via Google Meet. Here is the meeting link: %s
Time: %s - %s

Best Regards,
HR Team`, candidateEmail, meetLink, start.Format(time.RFC1123), end.Format(time.RFC1123))
}
