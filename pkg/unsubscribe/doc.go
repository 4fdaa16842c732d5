// Package unsubscribe issues and redeems single-use unsubscribe tokens.
//
// A token is an HS256 JWT with a random "jti", the configured issuer and
// audience, the fixed subject Subject and the recipient in the "user" claim.
// Tokens never expire. They are made single-use by recording the "jti" in a
// Revocations store the first time they are redeemed.
//
// Handler serves the one-click endpoint named in the List-Unsubscribe-Post
// header. ConfirmHandler serves the link in the email body: it shows a form
// that posts the token to Handler.
//
//	issuer := unsubscribe.NewIssuer(jwtService)
//	r.Get("/notifications/unsubscribe", unsubscribe.ConfirmHandler(issuer, log))
//	r.Post("/notifications/unsubscribe", unsubscribe.Handler(issuer, revocations, commentsStore, log))
package unsubscribe
