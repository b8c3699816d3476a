package handler

import (
	"testing"
	"time"

	"github.com/hirewise/hirewise/internal/models"
)

func TestBuildCandidateSheet(t *testing.T) {
	candidates := []models.Candidate{
		{
			Name:       "Jane Doe",
			Email:      "jane@email.com",
			Skills:     models.StringList{"Go", "Postgres"},
			Experience: "5 years",
			Education:  "BSc Computer Science",
			Location:   "Remote",
			Source:     "uploaded",
			CreatedAt:  time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			Name:      "John Doe",
			Email:     "john@email.com",
			Source:    "sender@email.com",
			CreatedAt: time.Date(2025, 4, 11, 9, 30, 0, 0, time.UTC),
		},
	}

	f, err := buildCandidateSheet(candidates)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if header != "Name" {
		t.Errorf("expected header 'Name', got %q", header)
	}

	name, err := f.GetCellValue(sheet, "A2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if name != "Jane Doe" {
		t.Errorf("expected 'Jane Doe' in first data row, got %q", name)
	}

	skills, err := f.GetCellValue(sheet, "C2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if skills != "Go, Postgres" {
		t.Errorf("expected joined skills, got %q", skills)
	}

	source, err := f.GetCellValue(sheet, "G3")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if source != "sender@email.com" {
		t.Errorf("expected source in second data row, got %q", source)
	}
}

func TestBuildCandidateSheet_Empty(t *testing.T) {
	f, err := buildCandidateSheet(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue(f.GetSheetName(0), "A1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if header != "Name" {
		t.Errorf("expected header row even with no candidates, got %q", header)
	}
}
