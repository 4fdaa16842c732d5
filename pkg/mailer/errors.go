package mailer

import "errors"

var (
	ErrUnknownTemplate   = errors.New("mailer: unknown template")
	ErrRecipientNotFound = errors.New("mailer: recipient has no email address")
	ErrRenderFailed      = errors.New("mailer: failed to render template")
	ErrInvalidURL        = errors.New("mailer: invalid unsubscribe url")
)
