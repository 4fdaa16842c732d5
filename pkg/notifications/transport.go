package notifications

import "context"

// DefaultTemplate is the transport template used for every category.
const DefaultTemplate = "notification"

// Message is one composed notification handed to the Transport.
type Message struct {
	TemplateID string
	Category   string
	// RecipientID is the user id; the transport resolves the address.
	RecipientID string
	Subject     string
	Locals      Locals
}

// Locals are the template values besides the subject.
type Locals struct {
	Body             string
	OrganizationName string
	UnsubscribeToken string
}

// Transport delivers a message and returns the provider's task id.
type Transport interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// TokenIssuer issues unsubscribe tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Translator resolves a translation key for the locale on ctx with
// positional arguments.
type Translator interface {
	Pc(ctx context.Context, key string, args ...string) string
}
