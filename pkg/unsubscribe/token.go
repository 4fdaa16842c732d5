package unsubscribe

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/jwt"
)

// Subject tags every unsubscribe token.
const Subject = "notifications.unsubscribe"

// Claims is the payload of an unsubscribe token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user"`
}

// Issuer signs and verifies unsubscribe tokens.
type Issuer struct {
	svc *jwt.Service
}

// NewIssuer creates an issuer. Issuer and audience come from svc.
func NewIssuer(svc *jwt.Service) *Issuer {
	return &Issuer{svc: svc}
}

// Issue returns a fresh token for userID. Two calls never return the same token.
func (i *Issuer) Issue(userID string) (string, error) {
	if userID == "" {
		return "", ErrEmptyUserID
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:      uuid.NewString(),
			Issuer:  i.svc.Issuer(),
			Subject: Subject,
		},
		UserID: userID,
	}
	if aud := i.svc.Audience(); aud != "" {
		claims.Audience = []string{aud}
	}
	token, err := i.svc.Generate(claims)
	if err != nil {
		return "", errors.Join(ErrIssueFailed, err)
	}
	return token, nil
}

// Verify checks signature, issuer, audience and subject and returns the claims.
func (i *Issuer) Verify(token string) (*Claims, error) {
	var claims Claims
	if err := i.svc.Parse(token, &claims); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if claims.Subject != Subject || claims.ID == "" || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
