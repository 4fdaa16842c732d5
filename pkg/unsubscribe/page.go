package unsubscribe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// ConfirmPage asks the reader to confirm and posts token back to action.
func ConfirmPage(action, token string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Unsubscribe</title></head>`)
		sb.WriteString(`<body style="font-family:sans-serif;color:#222;">`)
		sb.WriteString(`<p>Stop receiving email notifications about your comments?</p>`)
		sb.WriteString(`<form method="post" action="`)
		sb.WriteString(templ.EscapeString(action))
		sb.WriteString(`"><input type="hidden" name="token" value="`)
		sb.WriteString(templ.EscapeString(token))
		sb.WriteString(`"><button type="submit">Unsubscribe</button></form></body></html>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// ConfirmHandler serves the page linked from notification emails. It only
// verifies the token; redeeming happens when the form is posted to Handler,
// so link scanners that prefetch the URL do not unsubscribe anyone.
func ConfirmHandler(issuer *Issuer, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token := r.URL.Query().Get("token")

		if _, err := issuer.Verify(token); err != nil {
			if !errors.Is(err, ErrInvalidToken) {
				log.ErrorContext(ctx, "failed to verify unsubscribe token", logger.Error(err))
			}
			writeStatus(w, http.StatusBadRequest, "INVALID_TOKEN")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := ConfirmPage(r.URL.Path, token).Render(ctx, w); err != nil {
			log.ErrorContext(ctx, "failed to render unsubscribe page", logger.Error(err))
		}
	}
}
