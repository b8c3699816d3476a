package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/hirewise/hirewise/internal/models"
	"github.com/hirewise/hirewise/internal/repository"
)

type CandidateHandler struct {
	users      *repository.UserRepository
	candidates *repository.CandidateRepository
}

func NewCandidateHandler(users *repository.UserRepository, candidates *repository.CandidateRepository) *CandidateHandler {
	return &CandidateHandler{users: users, candidates: candidates}
}

// ListByPost returns all candidates matched against a job post.
func (h *CandidateHandler) ListByPost(c *gin.Context) {
	candidates, err := h.candidates.FindByJobPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load candidates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// Get returns a single candidate record.
func (h *CandidateHandler) Get(c *gin.Context) {
	if _, err := h.users.GetByID(c.Request.Context(), c.Param("userId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	candidate, err := h.candidates.GetByID(c.Request.Context(), c.Param("candidateId"))
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load candidate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidate": candidate})
}

// Export streams the candidates of a job post as an XLSX sheet.
func (h *CandidateHandler) Export(c *gin.Context) {
	postID := c.Param("postId")

	candidates, err := h.candidates.FindByJobPost(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load candidates"})
		return
	}

	f, err := buildCandidateSheet(candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=candidates-%s.xlsx", postID))
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write export"})
		return
	}
}

func buildCandidateSheet(candidates []models.Candidate) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Name", "Email", "Skills", "Experience", "Education", "Location", "Source", "Matched At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	for row, candidate := range candidates {
		values := []interface{}{
			candidate.Name,
			candidate.Email,
			strings.Join(candidate.Skills, ", "),
			candidate.Experience,
			candidate.Education,
			candidate.Location,
			candidate.Source,
			candidate.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	return f, nil
}
