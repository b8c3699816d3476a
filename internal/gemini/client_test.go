package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hirewise/hirewise/internal/models"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `{"candidate": {"name": "Jane Doe"}}`,
			expected: `{"candidate": {"name": "Jane Doe"}}`,
		},
		{
			name:     "JSON with markdown code blocks",
			input:    "```json\n{\"candidate\": {\"name\": \"Jane Doe\"}}\n```",
			expected: `{"candidate": {"name": "Jane Doe"}}`,
		},
		{
			name:     "JSON with plain code blocks",
			input:    "```\n{\"candidate\": {\"name\": \"Jane Doe\"}}\n```",
			expected: `{"candidate": {"name": "Jane Doe"}}`,
		},
		{
			name:     "JSON with explanatory text before",
			input:    "Here is the candidate data:\n{\"candidate\": {\"name\": \"Jane Doe\"}}",
			expected: `{"candidate": {"name": "Jane Doe"}}`,
		},
		{
			name:     "JSON with explanatory text after",
			input:    "{\"candidate\": {\"name\": \"Jane Doe\"}}\nThis resume matches the backend role.",
			expected: `{"candidate": {"name": "Jane Doe"}}`,
		},
		{
			name:     "JSON with whitespace",
			input:    "  \n  {\"candidate\": null}  \n  ",
			expected: `{"candidate": null}`,
		},
		{
			name:     "no JSON at all",
			input:    "I could not parse the resume.",
			expected: "I could not parse the resume.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanJSONResponse(tt.input)
			if result != tt.expected {
				t.Errorf("Expected:\n%s\n\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

// newTestClient returns a client pointed at a server that answers every
// generate call with the given LLM text.
func newTestClient(t *testing.T, status int, llmText string) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": "quota exceeded"}`))
			return
		}
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]interface{}{
							{"text": llmText},
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	client := NewClient("gemini-2.0-flash")
	client.baseURL = server.URL
	return client, server
}

func TestMatchCandidate_FencedAndUnfencedParseIdentically(t *testing.T) {
	candidateJSON := `{"candidate": {"jobpost_id": "post-1", "name": "Jane Doe", "email": "jane@email.com", "skills": ["Python"], "experience": "5 years", "projects": [], "education": "BSc", "location": "Remote"}}`

	variants := []struct {
		name string
		text string
	}{
		{"unfenced", candidateJSON},
		{"fenced", "```json\n" + candidateJSON + "\n```"},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			client, server := newTestClient(t, http.StatusOK, v.text)
			defer server.Close()

			data, raw, err := client.MatchCandidate(context.Background(), "key", "Jane Doe, 5 years, Python", "Resume - Jane Doe", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if data.Name != "Jane Doe" {
				t.Errorf("expected name 'Jane Doe', got %q", data.Name)
			}
			if data.JobPostID != "post-1" {
				t.Errorf("expected jobpost_id 'post-1', got %q", data.JobPostID)
			}
			if len(data.Skills) != 1 || data.Skills[0] != "Python" {
				t.Errorf("expected skills [Python], got %v", data.Skills)
			}
			if raw == nil {
				t.Error("expected raw response to be captured")
			}
		})
	}
}

func TestMatchCandidate_HTTPError(t *testing.T) {
	client, server := newTestClient(t, http.StatusTooManyRequests, "")
	defer server.Close()

	_, _, err := client.MatchCandidate(context.Background(), "key", "some text", "subject", nil)
	if err == nil {
		t.Fatal("expected error on non-2xx response, got nil")
	}
}

func TestMatchCandidate_UnparsableResponse(t *testing.T) {
	client, server := newTestClient(t, http.StatusOK, "sorry, I cannot help with that")
	defer server.Close()

	_, _, err := client.MatchCandidate(context.Background(), "key", "some text", "subject", nil)
	if err == nil {
		t.Fatal("expected error on unparsable response, got nil")
	}
}

func TestMatchCandidate_SchemaMismatch(t *testing.T) {
	// Valid JSON but missing the required candidate fields
	client, server := newTestClient(t, http.StatusOK, `{"candidate": {"name": "Jane Doe"}}`)
	defer server.Close()

	_, _, err := client.MatchCandidate(context.Background(), "key", "some text", "subject", nil)
	if err == nil {
		t.Fatal("expected schema validation error, got nil")
	}
}

func TestScreenCandidate_ParsesScores(t *testing.T) {
	client, server := newTestClient(t, http.StatusOK, "```json\n{\"screening\": {\"skills\": \"80\", \"experience\": \"90\", \"qualification\": \"70\", \"overall\": \"85\"}}\n```")
	defer server.Close()

	scores, err := client.ScreenCandidate(context.Background(), "key", &models.Candidate{Name: "Jane Doe"}, &models.JobPost{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if scores["overall"] != "85" {
		t.Errorf("expected overall '85', got %v", scores["overall"])
	}
}

func TestRankCandidates_EmptyRanking(t *testing.T) {
	client, server := newTestClient(t, http.StatusOK, `{"ranking": []}`)
	defer server.Close()

	_, err := client.RankCandidates(context.Background(), "key", &models.JobPost{}, nil)
	if err == nil {
		t.Fatal("expected error for empty ranking, got nil")
	}
}
