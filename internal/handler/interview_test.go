package handler

import (
	"strings"
	"testing"
	"time"
)

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"RFC3339 with offset", "2025-04-10T10:00:00+05:30", false},
		{"RFC3339 UTC", "2025-04-10T10:00:00Z", false},
		{"ISO without zone", "2025-04-10T10:00:00", false},
		{"date only", "2025-04-10", true},
		{"garbage", "next tuesday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseSlotTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %v", tt.input, parsed)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error for %q, got %v", tt.input, err)
			}
			if parsed.Year() != 2025 || parsed.Hour() != 10 {
				t.Errorf("unexpected parsed time %v", parsed)
			}
		})
	}
}

func TestInviteEmailBody(t *testing.T) {
	body := inviteEmailBody("Jane Doe", "Backend Engineer", "http://localhost:5173", "user-123")

	for _, want := range []string{
		"Dear Jane Doe",
		"position of Backend Engineer",
		"http://localhost:5173/book-slot/user-123",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected invite body to contain %q, got:\n%s", want, body)
		}
	}
}

func TestBookingNotificationBody(t *testing.T) {
	start := time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	body := bookingNotificationBody("jane@email.com", "https://meet.google.com/abc-defg-hij", start, end)

	for _, want := range []string{
		"jane@email.com",
		"https://meet.google.com/abc-defg-hij",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected notification body to contain %q, got:\n%s", want, body)
		}
	}
}
