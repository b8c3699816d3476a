package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract converts raw PDF bytes into plain text. An empty string is a
// valid result for an image-only document; any parse failure is an error
// the caller treats as skip-this-attachment.
func (e *Extractor) Extract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}

	res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", true)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return strings.TrimSpace(res.Body), nil
}

// IsPDF reports whether a filename carries a PDF extension
func IsPDF(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
