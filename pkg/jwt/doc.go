// Package jwt signs and verifies HS256 JSON Web Tokens on top of
// github.com/golang-jwt/jwt/v5.
//
// A Service holds the signing key and, optionally, the issuer and audience
// every parsed token must carry. Claims types embed RegisteredClaims and add
// their own fields:
//
//	type Claims struct {
//		jwt.RegisteredClaims
//		UserID string `json:"user"`
//	}
//
//	svc, err := jwt.New(key, jwt.WithIssuer("notifier"), jwt.WithAudience("app"))
//	token, err := svc.Generate(Claims{UserID: "u1"})
//	var c Claims
//	err = svc.Parse(token, &c)
//
// Parse errors wrap one of the package sentinels (ErrInvalidToken,
// ErrExpiredToken, ErrInvalidSignature, ErrInvalidClaims) so callers can
// branch with errors.Is without depending on the underlying library.
package jwt
