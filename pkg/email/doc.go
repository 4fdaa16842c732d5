// Package email sends transactional HTML emails.
//
// EmailSender is implemented by a Postmark client for production and by
// DevSender, which writes each message to disk as an .html file plus a .json
// metadata file. Both validate SendEmailParams first and return a message id:
// Postmark's MessageID, or the base file name for DevSender.
//
//	sender, err := email.NewPostmarkClient(cfg)
//	id, err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Your comment was featured",
//		BodyHTML: html,
//		Tag:      "featured",
//		Headers:  map[string]string{"List-Unsubscribe": "<https://...>"},
//	})
//
// HTML bodies are rendered from templ components in the templates package.
package email
