package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirewise/hirewise/internal/models"
)

// GenerateJobPost asks the model to produce publishing variants of a job
// post: an online-platform version, a social-media version, and a details
// section.
func (c *Client) GenerateJobPost(ctx context.Context, apiKey string, post *models.JobPost) (online, social, details models.JSONB, err error) {
	postJSON, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal job post: %w", err)
	}

	prompt := fmt.Sprintf(`Create a job post like a pro.
Here is the details of the job post:
%s

Create job post that attracts the best candidates for the job.
You should return a json format of the job post with these keys:

"online_job_platform": job post fields (job_headline, job_title, job_description, job_location, job_type, job_category, job_salary) written to online job platform standard, with a headline generated to attract candidates.
"facebook_linkedin": the same fields written to Facebook and LinkedIn standard.
"details": a detailed job post with headline and description fields containing all necessary info.

Return ONLY the JSON object.`, string(postJSON))

	content, err := c.Complete(ctx, apiKey, prompt)
	if err != nil {
		return nil, nil, nil, err
	}

	var parsed struct {
		OnlineJobPlatform models.JSONB `json:"online_job_platform"`
		FacebookLinkedin  models.JSONB `json:"facebook_linkedin"`
		Details           models.JSONB `json:"details"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &parsed); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse generated job post: %w", err)
	}

	return parsed.OnlineJobPlatform, parsed.FacebookLinkedin, parsed.Details, nil
}

// RankCandidates asks the model to order candidates for a job post by
// skills and experience, with a reason per position.
func (c *Client) RankCandidates(ctx context.Context, apiKey string, post *models.JobPost, candidates []models.Candidate) ([]interface{}, error) {
	postJSON, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job post: %w", err)
	}
	candidatesJSON, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal candidates: %w", err)
	}

	prompt := fmt.Sprintf(`Here is the job post and candidates' information.
**Job Post**:
%s

**Candidates**:
%s

Generate a ranking of the candidates based on their skills and experience.
You should return a JSON format like below:

`+"```json"+`
{
    "ranking": [
        {
            "_id": "candidate_id",
            "name": "John Doe",
            "email": "john@email.com",
            "metrics": "Reason why this candidate ranks in this position"
        }
    ]
}
`+"```", string(postJSON), string(candidatesJSON))

	content, err := c.Complete(ctx, apiKey, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Ranking []interface{} `json:"ranking"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse ranking JSON: %w", err)
	}
	if len(parsed.Ranking) == 0 {
		return nil, fmt.Errorf("empty ranking from LLM")
	}

	return parsed.Ranking, nil
}

// ScreenCandidate asks the model for percentage screening scores of one
// candidate against one job post.
func (c *Client) ScreenCandidate(ctx context.Context, apiKey string, candidate *models.Candidate, post *models.JobPost) (models.JSONB, error) {
	candidateJSON, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal candidate: %w", err)
	}
	postJSON, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job post: %w", err)
	}

	prompt := fmt.Sprintf(`here is the candidate and job post information.
**Candidate**:
%s

**Job Post**:
%s

Generate a screening of the candidate and give percentage value like below:

`+"```json"+`
{
    "screening": {
        "skills": "80",
        "experience": "90",
        "qualification": "70",
        "overall": "85"
    }
}
`+"```"+`

YOU MUST RETURN A JSON VALUE BASED ON THE JOB POST AND CANDIDATE INFO.`, string(candidateJSON), string(postJSON))

	content, err := c.Complete(ctx, apiKey, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Screening models.JSONB `json:"screening"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse screening JSON: %w", err)
	}
	if parsed.Screening == nil {
		return nil, fmt.Errorf("empty screening from LLM")
	}

	return parsed.Screening, nil
}
