package unsubscribe

import "errors"

var (
	ErrEmptyUserID      = errors.New("unsubscribe: empty user id")
	ErrInvalidToken     = errors.New("unsubscribe: invalid token")
	ErrTokenUsed        = errors.New("unsubscribe: token already used")
	ErrIssueFailed      = errors.New("unsubscribe: failed to issue token")
	ErrRevocationFailed = errors.New("unsubscribe: failed to record token use")
)
