package pdf

import "testing"

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{"lowercase extension", "resume.pdf", true},
		{"uppercase extension", "RESUME.PDF", true},
		{"mixed case", "Jane_Doe_CV.Pdf", true},
		{"docx", "resume.docx", false},
		{"no extension", "resume", false},
		{"pdf in name only", "pdf-guide.txt", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPDF(tt.filename); got != tt.expected {
				t.Errorf("IsPDF(%q) = %v, expected %v", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract(nil); err == nil {
		t.Fatal("expected error for empty document, got nil")
	}
}
