package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirewise/hirewise/internal/models"
)

// CandidateData is the structured candidate record the model is asked to
// emit. jobpost_id is whatever the model claims; it is not validated
// against existing posts.
type CandidateData struct {
	JobPostID  string   `json:"jobpost_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Projects   []string `json:"projects"`
	Education  string   `json:"education"`
	Location   string   `json:"location"`
}

var candidateSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"candidate"},
	"properties": map[string]interface{}{
		"candidate": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"jobpost_id", "name", "email"},
			"properties": map[string]interface{}{
				"jobpost_id": map[string]interface{}{"type": "string"},
				"name":       map[string]interface{}{"type": "string"},
				"email":      map[string]interface{}{"type": "string"},
				"skills": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "string"},
				},
				"experience": map[string]interface{}{"type": "string"},
				"projects": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "string"},
				},
				"education": map[string]interface{}{"type": "string"},
				"location":  map[string]interface{}{"type": "string"},
			},
		},
	},
}

// MatchCandidate sends resume text plus the user's job posts to the model
// and parses the structured candidate it returns. Any parse or transport
// failure is a hard error for this one document.
func (c *Client) MatchCandidate(ctx context.Context, apiKey string, resumeText string, sourceLabel string, posts []models.JobPost) (*CandidateData, models.JSONB, error) {
	prompt, err := buildMatchPrompt(resumeText, sourceLabel, posts)
	if err != nil {
		return nil, nil, err
	}

	content, err := c.Complete(ctx, apiKey, prompt)
	if err != nil {
		return nil, nil, err
	}

	cleaned := []byte(cleanJSONResponse(content))
	if err := validateJSONAgainstSchema(candidateSchema, cleaned); err != nil {
		return nil, nil, fmt.Errorf("unexpected candidate payload: %w", err)
	}

	var parsed struct {
		Candidate CandidateData `json:"candidate"`
	}
	if err := json.Unmarshal(cleaned, &parsed); err != nil {
		return nil, nil, fmt.Errorf("failed to parse candidate JSON: %w", err)
	}

	var raw models.JSONB
	_ = json.Unmarshal(cleaned, &raw)

	return &parsed.Candidate, raw, nil
}

func buildMatchPrompt(resumeText string, sourceLabel string, posts []models.JobPost) (string, error) {
	postsJSON, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal job posts: %w", err)
	}

	return fmt.Sprintf(`Here is the extracted text from the resume. Collect the data of the candidate and return a json format.

**Resume Text:**
%s

You must check experience, skills, projects, education, and location of the candidate. May be
the information is not in the same order as mentioned above. You have to extract the information
from the text may be they are disguised in the text.
and here is email subject
**Email Subject:**
%s **It can be the filename if it is not relevant then focus on the extracted text**
and all job posts:
%s
identify the which job post is applied by the user and return jobpost id.

here is the example of the data you should return in json format:
`+"```json"+`
{
    "candidate": {
        "jobpost_id": "jobpost_id",
        "name": "John Doe",
        "email": "john@email.com",
        "skills": ["Python", "JavaScript", "React"],
        "experience": "5 years",
        "projects": ["Project 1", "Project 2"],
        "education": "Bachelor's Degree",
        "location": "San Francisco, CA"
    }
}
`+"```"+`
DO NOT CHANGE ANY NAME CONVENTION IN THE JSON FORMAT.
YOU MUST RETURN A JSON FORMAT OF THE CANDIDATE DATA`, resumeText, sourceLabel, string(postsJSON)), nil
}
