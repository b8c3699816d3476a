package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirewise/hirewise/internal/models"
	"github.com/hirewise/hirewise/internal/pdf"
	"github.com/hirewise/hirewise/internal/repository"
	"github.com/hirewise/hirewise/internal/service"
)

type ResumeHandler struct {
	users     *repository.UserRepository
	extractor *pdf.Extractor
	processor *service.IngestProcessor
}

func NewResumeHandler(users *repository.UserRepository, extractor *pdf.Extractor, processor *service.IngestProcessor) *ResumeHandler {
	return &ResumeHandler{users: users, extractor: extractor, processor: processor}
}

// Upload accepts a batch of PDF resumes and runs each through the same
// extract-and-match steps as the mailbox pipeline, with source "uploaded".
func (h *ResumeHandler) Upload(c *gin.Context) {
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

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	processed := make([]gin.H, 0, len(files))
	for _, fileHeader := range files {
		if !pdf.IsPDF(fileHeader.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid file format: %s. Please upload only PDF files.", fileHeader.Filename),
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		text, err := h.extractor.Extract(data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to extract text from %s", fileHeader.Filename),
			})
			return
		}

		candidate, err := h.processor.ProcessDocument(c.Request.Context(), user, text, fileHeader.Filename, models.SourceUploaded)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to match %s", fileHeader.Filename),
			})
			return
		}

		processed = append(processed, gin.H{
			"filename":  fileHeader.Filename,
			"candidate": candidate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "PDFs uploaded successfully",
		"processed_files": processed,
	})
}
