// Package mailer sends transactional email.
package mailer

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"quill/logging"
)

// Message is a single outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var verificationHTML = template.Must(template.New("verification").Parse(
	`<p>Hello {{.Name}},</p><p>Please verify your email by clicking <a href="{{.Link}}">this link</a>.</p><p>The link expires in one hour.</p>`))

// VerificationMessage builds the email that carries a verification link.
// The HTML part escapes name and link since both come from the request.
func VerificationMessage(to, name, link string) Message {
	msg := Message{
		To:      to,
		ToName:  name,
		Subject: "Verify your email",
		Text:    fmt.Sprintf("Hello %s,\n\nPlease verify your email by opening this link: %s\n\nThe link expires in one hour.", name, link),
	}
	var b strings.Builder
	// Only the text part is sent if rendering fails.
	if err := verificationHTML.Execute(&b, struct{ Name, Link string }{name, link}); err == nil {
		msg.HTML = b.String()
	}
	return msg
}

// LogMailer writes messages to the log instead of delivering them. It is
// used when no mail provider is configured.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info(ctx, "mail not delivered, no provider configured",
		"to", msg.To, "subject", msg.Subject, "body", msg.Text)
	return nil
}
