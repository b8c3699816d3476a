package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/hirewise/hirewise/internal/models"
)

// Client creates interview events on the recruiter's primary calendar.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// CreateInterviewEvent books a calendar event with a Meet conference for
// the given window and returns the Meet link. The credential must belong
// to the calendar owner, not the candidate.
func (c *Client) CreateInterviewEvent(ctx context.Context, cred *models.Credential, start, end time.Time, candidateEmail string) (string, error) {
	token := &oauth2.Token{AccessToken: cred.AccessToken}
	if cred.TokenType != nil {
		token.TokenType = *cred.TokenType
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return "", fmt.Errorf("failed to create calendar service: %w", err)
	}

	event := &calendar.Event{
		Summary:     "Interview",
		Description: fmt.Sprintf("Interview with %s", candidateEmail),
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		Attendees: []*calendar.EventAttendee{
			{Email: candidateEmail},
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: uuid.New().String(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := svc.Events.Insert("primary", event).ConferenceDataVersion(1).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}

	link := meetLink(created)
	if link == "" {
		return "", fmt.Errorf("calendar event created without a meet link")
	}
	return link, nil
}

// meetLink pulls the video entry point out of the conference data.
func meetLink(event *calendar.Event) string {
	if event.HangoutLink != "" {
		return event.HangoutLink
	}
	if event.ConferenceData == nil {
		return ""
	}
	for _, ep := range event.ConferenceData.EntryPoints {
		if ep.EntryPointType == "video" {
			return ep.Uri
		}
	}
	return ""
}
