package mailbox

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/hirewise/hirewise/internal/models"
	"github.com/hirewise/hirewise/internal/pdf"
	"github.com/hirewise/hirewise/internal/repository"
	"github.com/hirewise/hirewise/internal/service"
)

var oauthScopes = []string{
	gmail.GmailReadonlyScope,
	gmail.GmailSendScope,
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// CredentialStore interface for reading and persisting OAuth tokens
type CredentialStore interface {
	GetByUser(ctx context.Context, userID string, provider string) (*models.Credential, error)
	Upsert(ctx context.Context, cred *models.Credential) error
}

// Gateway talks to the users' Gmail inboxes on their behalf. Tokens are
// resolved per call; the gateway itself holds no per-user state.
type Gateway struct {
	oauthConfig *oauth2.Config
	credentials CredentialStore
}

func NewGateway(clientID, clientSecret, redirectURI string, credentials CredentialStore) *Gateway {
	return &Gateway{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       oauthScopes,
			Endpoint:     google.Endpoint,
		},
		credentials: credentials,
	}
}

// AuthCodeURL returns the consent URL the user must visit to grant
// mailbox access. Offline access so a refresh token is issued.
func (g *Gateway) AuthCodeURL(state string) string {
	return g.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens.
func (g *Gateway) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// StoreToken persists an exchanged token for the user.
func (g *Gateway) StoreToken(ctx context.Context, userID string, token *oauth2.Token) error {
	cred := &models.Credential{
		ID:          uuid.New().String(),
		UserID:      userID,
		Provider:    models.ProviderGoogle,
		AccessToken: token.AccessToken,
	}
	if token.RefreshToken != "" {
		rt := token.RefreshToken
		cred.RefreshToken = &rt
	}
	if token.TokenType != "" {
		tt := token.TokenType
		cred.TokenType = &tt
	}
	if !token.Expiry.IsZero() {
		exp := token.Expiry
		cred.Expiry = &exp
	}
	return g.credentials.Upsert(ctx, cred)
}

// ResolveCredential returns a usable token for the user, refreshing an
// expired one when a refresh token is on file. Users without a grant, or
// with an expired grant that cannot be refreshed, get ErrAuthRequired.
func (g *Gateway) ResolveCredential(ctx context.Context, userID string) (*models.Credential, error) {
	cred, err := g.credentials.GetByUser(ctx, userID, models.ProviderGoogle)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, service.ErrAuthRequired
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	if cred.Expiry == nil || cred.Expiry.After(time.Now()) {
		return cred, nil
	}

	if cred.RefreshToken == nil || *cred.RefreshToken == "" {
		return nil, service.ErrAuthRequired
	}

	refreshed, err := g.oauthConfig.TokenSource(ctx, &oauth2.Token{
		RefreshToken: *cred.RefreshToken,
	}).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	cred.AccessToken = refreshed.AccessToken
	if refreshed.RefreshToken != "" {
		rt := refreshed.RefreshToken
		cred.RefreshToken = &rt
	}
	if !refreshed.Expiry.IsZero() {
		exp := refreshed.Expiry
		cred.Expiry = &exp
	}
	if err := g.credentials.Upsert(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to store refreshed token: %w", err)
	}

	log.Printf("Refreshed mailbox token for user %s", userID)
	return cred, nil
}

// ListRecent returns IDs of inbox messages received after the given time.
func (g *Gateway) ListRecent(ctx context.Context, cred *models.Credential, since time.Time) ([]string, error) {
	svc, err := g.gmailService(ctx, cred)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("after:%d", since.Unix())
	resp, err := svc.Users.Messages.List("me").Q(query).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// FetchMessage downloads one message with its headers, plain-text body
// and the first PDF attachment, if any.
func (g *Gateway) FetchMessage(ctx context.Context, cred *models.Credential, messageID string) (*service.InboundMessage, error) {
	svc, err := g.gmailService(ctx, cred)
	if err != nil {
		return nil, err
	}

	msg, err := svc.Users.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}

	inbound := &service.InboundMessage{ID: messageID}
	if msg.Payload == nil {
		return inbound, nil
	}

	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "From":
			inbound.From = h.Value
		case "Subject":
			inbound.Subject = h.Value
		}
	}

	inbound.Body = findPlainTextBody(msg.Payload)

	name, attachmentID := findFirstPDF(msg.Payload)
	if attachmentID != "" {
		att, err := svc.Users.Messages.Attachments.Get("me", messageID, attachmentID).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch attachment %s: %w", name, err)
		}
		data, err := decodeBody(att.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode attachment %s: %w", name, err)
		}
		inbound.PDFName = name
		inbound.PDF = data
	}

	return inbound, nil
}

// SendEmail sends a plain-text mail from the user's own address.
func (g *Gateway) SendEmail(ctx context.Context, cred *models.Credential, to, subject, body string) error {
	svc, err := g.gmailService(ctx, cred)
	if err != nil {
		return err
	}

	raw := buildRawMessage(to, subject, body)
	if _, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Do(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("Sent email to %s: %s", to, subject)
	return nil
}

func (g *Gateway) gmailService(ctx context.Context, cred *models.Credential) (*gmail.Service, error) {
	token := &oauth2.Token{AccessToken: cred.AccessToken}
	if cred.TokenType != nil {
		token.TokenType = *cred.TokenType
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return svc, nil
}

// findPlainTextBody walks the MIME tree for the first text/plain part.
// Single-part messages carry the body on the payload itself.
func findPlainTextBody(part *gmail.MessagePart) string {
	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		data, err := decodeBody(part.Body.Data)
		if err != nil {
			return ""
		}
		return string(data)
	}

	for _, p := range part.Parts {
		if body := findPlainTextBody(p); body != "" {
			return body
		}
	}
	return ""
}

// findFirstPDF walks the MIME tree for the first attachment named *.pdf.
// Later PDFs in the same message are ignored.
func findFirstPDF(part *gmail.MessagePart) (filename, attachmentID string) {
	if pdf.IsPDF(part.Filename) && part.Body != nil && part.Body.AttachmentId != "" {
		return part.Filename, part.Body.AttachmentId
	}

	for _, p := range part.Parts {
		if name, id := findFirstPDF(p); id != "" {
			return name, id
		}
	}
	return "", ""
}

// decodeBody handles both padded and unpadded URL-safe base64, which the
// Gmail API mixes freely.
func decodeBody(data string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err == nil {
		return decoded, nil
	}
	return base64.RawURLEncoding.DecodeString(data)
}

// buildRawMessage assembles an RFC 2822 message and encodes it the way
// the Gmail send API expects.
func buildRawMessage(to, subject, body string) string {
	var sb strings.Builder
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(sb.String()))
}
