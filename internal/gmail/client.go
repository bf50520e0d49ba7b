package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/fewebahr/gogctl/internal/auth"
	"github.com/fewebahr/gogctl/internal/logging"
)

// Client wraps the Gmail API service for one profile's session.
type Client struct {
	svc     *gmail.Service
	profile string
}

// NewClient creates a Gmail client authenticated with the given session.
func NewClient(ctx context.Context, session *auth.Session) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(session.HTTPClient(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	slog.Default().Debug("service client created",
		logging.Service("gmail"), logging.Profile(session.Profile()))
	return &Client{svc: svc, profile: session.Profile()}, nil
}

// Profile returns the profile name this client is associated with.
func (c *Client) Profile() string {
	return c.profile
}

// ListMessages lists messages matching a Gmail search query.
func (c *Client) ListMessages(query string, maxResults int64) ([]MessageSummary, error) {
	call := c.svc.Users.Messages.List("me").MaxResults(maxResults)
	if query != "" {
		call = call.Q(query)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var summaries []MessageSummary
	for _, ref := range resp.Messages {
		msg, err := c.svc.Users.Messages.Get("me", ref.Id).
			Format("metadata").
			MetadataHeaders("From", "To", "Subject", "Date").
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get message %s: %w", ref.Id, err)
		}
		summaries = append(summaries, toMessageSummary(msg))
	}
	return summaries, nil
}

// GetMessage retrieves a full message including its plain-text body.
func (c *Client) GetMessage(messageID string) (*Message, error) {
	msg, err := c.svc.Users.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}

	result := &Message{
		MessageSummary: toMessageSummary(msg),
		Body:           extractPlainText(msg.Payload),
	}
	return result, nil
}

// SendMessage sends an email and returns the sent message ID.
func (c *Client) SendMessage(msg *OutgoingMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if msg.Body == "" {
		return "", fmt.Errorf("body is required")
	}

	raw := base64.URLEncoding.EncodeToString([]byte(buildRFC2822(msg)))
	sent, err := c.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}

// ArchiveThread removes a thread from the inbox.
func (c *Client) ArchiveThread(threadID string) error {
	req := &gmail.ModifyThreadRequest{RemoveLabelIds: []string{"INBOX"}}
	if _, err := c.svc.Users.Threads.Modify("me", threadID, req).Do(); err != nil {
		return fmt.Errorf("failed to archive thread %s: %w", threadID, err)
	}
	return nil
}

// TrashMessage moves a message to the trash.
func (c *Client) TrashMessage(messageID string) error {
	if _, err := c.svc.Users.Messages.Trash("me", messageID).Do(); err != nil {
		return fmt.Errorf("failed to trash message %s: %w", messageID, err)
	}
	return nil
}

// ModifyMessage adds and removes labels on a message.
func (c *Client) ModifyMessage(messageID string, addLabels, removeLabels []string) error {
	req := &gmail.ModifyMessageRequest{
		AddLabelIds:    addLabels,
		RemoveLabelIds: removeLabels,
	}
	if _, err := c.svc.Users.Messages.Modify("me", messageID, req).Do(); err != nil {
		return fmt.Errorf("failed to modify message %s: %w", messageID, err)
	}
	return nil
}

// ListLabels lists the user's labels.
func (c *Client) ListLabels() ([]Label, error) {
	resp, err := c.svc.Users.Labels.List("me").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	var labels []Label
	for _, l := range resp.Labels {
		labels = append(labels, Label{ID: l.Id, Name: l.Name, Type: l.Type})
	}
	return labels, nil
}

// buildRFC2822 assembles the outgoing message in RFC 2822 format.
func buildRFC2822(msg *OutgoingMessage) string {
	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(strings.Join(msg.To, ", "))
	b.WriteString("\r\n")
	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(msg.Cc, ", "))
		b.WriteString("\r\n")
	}
	if len(msg.Bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(strings.Join(msg.Bcc, ", "))
		b.WriteString("\r\n")
	}
	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return b.String()
}

// encodeRFC2047 encodes a header value for non-ASCII characters.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

// extractPlainText walks the message payload for the first text/plain part.
func extractPlainText(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}
	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		// The API emits web-safe base64 without padding.
		data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(part.Body.Data, "="))
		if err != nil {
			return ""
		}
		return string(data)
	}
	for _, p := range part.Parts {
		if text := extractPlainText(p); text != "" {
			return text
		}
	}
	return ""
}

// headerValue returns the value of a named header, case-insensitively.
func headerValue(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func toMessageSummary(msg *gmail.Message) MessageSummary {
	return MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		From:     headerValue(msg, "From"),
		To:       headerValue(msg, "To"),
		Subject:  headerValue(msg, "Subject"),
		Date:     headerValue(msg, "Date"),
		Snippet:  msg.Snippet,
		Labels:   msg.LabelIds,
	}
}
