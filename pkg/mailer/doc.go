// Package mailer delivers composed notifications as email.
//
// Mailer implements notifications.Transport. It resolves the recipient's
// address through the comment platform's user store, renders the
// notification template with an unsubscribe link and hands the result to an
// email.EmailSender. The sender's message id becomes the task id.
//
//	m := mailer.New(sender, store, "https://news.example.com/notifications/unsubscribe")
//	taskID, err := m.Send(ctx, msg)
//
// Every message carries List-Unsubscribe and List-Unsubscribe-Post headers
// so mail clients can offer one-click unsubscribe.
package mailer
