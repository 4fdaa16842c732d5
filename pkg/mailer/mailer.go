package mailer

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/notifykit/pkg/comments"
	"github.com/dmitrymomot/notifykit/pkg/email"
	"github.com/dmitrymomot/notifykit/pkg/email/templates"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/notifications"
)

// Users resolves a user id to the stored profile.
type Users interface {
	GetUser(ctx context.Context, id string) (comments.User, error)
}

// TemplateFunc builds the email component for one message.
type TemplateFunc func(templates.NotificationLocals) templ.Component

// Mailer is a notifications.Transport backed by an email sender.
type Mailer struct {
	sender         email.EmailSender
	users          Users
	unsubscribeURL string
	templates      map[string]TemplateFunc
	logger         *slog.Logger
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the logger used to record sent emails.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTemplate registers an additional template under id.
func WithTemplate(id string, fn TemplateFunc) Option {
	return func(m *Mailer) {
		if id != "" && fn != nil {
			m.templates[id] = fn
		}
	}
}

// New creates a Mailer. unsubscribeURL is the public endpoint the token is
// appended to as the "token" query parameter.
func New(sender email.EmailSender, users Users, unsubscribeURL string, opts ...Option) *Mailer {
	m := &Mailer{
		sender:         sender,
		users:          users,
		unsubscribeURL: unsubscribeURL,
		templates: map[string]TemplateFunc{
			notifications.DefaultTemplate: templates.Notification,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send renders msg and emails it to the recipient.
func (m *Mailer) Send(ctx context.Context, msg notifications.Message) (string, error) {
	tpl, ok := m.templates[msg.TemplateID]
	if !ok {
		return "", ErrUnknownTemplate
	}

	user, err := m.users.GetUser(ctx, msg.RecipientID)
	if errors.Is(err, comments.ErrNotFound) {
		return "", errors.Join(ErrRecipientNotFound, err)
	}
	if err != nil {
		return "", err
	}
	if !email.IsValidAddress(user.Email) {
		return "", ErrRecipientNotFound
	}

	link, err := m.unsubscribeLink(msg.Locals.UnsubscribeToken)
	if err != nil {
		return "", err
	}

	body, err := templates.Render(ctx, tpl(templates.NotificationLocals{
		Subject:          msg.Subject,
		Body:             msg.Locals.Body,
		OrganizationName: msg.Locals.OrganizationName,
		UnsubscribeURL:   link,
	}))
	if err != nil {
		return "", errors.Join(ErrRenderFailed, err)
	}

	params := email.SendEmailParams{
		SendTo:   user.Email,
		Subject:  msg.Subject,
		BodyHTML: body,
		Tag:      msg.Category,
	}
	if link != "" {
		params.Headers = map[string]string{
			"List-Unsubscribe":      "<" + link + ">",
			"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
		}
	}

	id, err := m.sender.SendEmail(ctx, params)
	if err != nil {
		return "", err
	}

	m.logger.DebugContext(ctx, "notification email sent",
		logger.Category(msg.Category),
		logger.UserID(msg.RecipientID),
		logger.TaskID(id),
	)
	return id, nil
}

func (m *Mailer) unsubscribeLink(token string) (string, error) {
	if token == "" || m.unsubscribeURL == "" {
		return "", nil
	}
	u, err := url.Parse(m.unsubscribeURL)
	if err != nil {
		return "", errors.Join(ErrInvalidURL, err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
