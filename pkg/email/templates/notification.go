package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// NotificationLocals are the values filled into the notification email.
type NotificationLocals struct {
	Subject          string
	Body             string
	OrganizationName string
	UnsubscribeURL   string
}

// Notification is the single-column email used for every notification
// category. Body is plain text; blank lines separate paragraphs.
func Notification(l NotificationLocals) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
		sb.WriteString(templ.EscapeString(l.Subject))
		sb.WriteString(`</title></head><body style="font-family:sans-serif;color:#222;">`)
		if l.OrganizationName != "" {
			sb.WriteString(`<h2>`)
			sb.WriteString(templ.EscapeString(l.OrganizationName))
			sb.WriteString(`</h2>`)
		}
		for _, p := range paragraphs(l.Body) {
			sb.WriteString(`<p>`)
			sb.WriteString(strings.ReplaceAll(templ.EscapeString(p), "\n", "<br>"))
			sb.WriteString(`</p>`)
		}
		if l.UnsubscribeURL != "" {
			sb.WriteString(`<hr><p style="font-size:12px;color:#888;"><a href="`)
			sb.WriteString(templ.EscapeString(l.UnsubscribeURL))
			sb.WriteString(`">Unsubscribe</a> from these notifications.</p>`)
		}
		sb.WriteString(`</body></html>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func paragraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
