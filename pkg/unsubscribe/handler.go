package unsubscribe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Preferences turns off notifications for a user.
type Preferences interface {
	DisableNotifications(ctx context.Context, userID string) error
}

// Redeem verifies token, marks it used and disables notifications for its user.
// It returns the user id on success.
func Redeem(ctx context.Context, issuer *Issuer, revocations Revocations, prefs Preferences, token string) (string, error) {
	claims, err := issuer.Verify(token)
	if err != nil {
		return "", err
	}

	first, err := revocations.Revoke(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if !first {
		return "", ErrTokenUsed
	}

	if err := prefs.DisableNotifications(ctx, claims.UserID); err != nil {
		if rerr := revocations.Release(ctx, claims.ID); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return "", err
	}
	return claims.UserID, nil
}

// Handler serves one-click unsubscribe requests. The token is read from the
// "token" form field or query parameter.
func Handler(issuer *Issuer, revocations Revocations, prefs Preferences, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := Redeem(ctx, issuer, revocations, prefs, r.FormValue("token"))
		switch {
		case err == nil:
			log.InfoContext(ctx, "user unsubscribed from notifications", logger.UserID(userID))
			writeStatus(w, http.StatusOK, "UNSUBSCRIBED")
		case errors.Is(err, ErrInvalidToken):
			log.DebugContext(ctx, "invalid unsubscribe token", logger.Error(err))
			writeStatus(w, http.StatusBadRequest, "INVALID_TOKEN")
		case errors.Is(err, ErrTokenUsed):
			writeStatus(w, http.StatusGone, "TOKEN_USED")
		default:
			log.ErrorContext(ctx, "failed to unsubscribe", logger.Error(err))
			writeStatus(w, http.StatusInternalServerError, "INTERNAL_ERROR")
		}
	}
}

func writeStatus(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
