package templates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/email/templates"
)

func TestNotification(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Notification(templates.NotificationLocals{
		Subject:          "Acme: featured",
		Body:             "Your comment on <b>News</b> was featured.\n\nSee it here:\nhttps://news.test/a?commentId=1",
		OrganizationName: "Acme & Co",
		UnsubscribeURL:   "https://news.test/unsubscribe?token=abc",
	}))
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Acme: featured</title>")
	assert.Contains(t, html, "<h2>Acme &amp; Co</h2>")
	assert.Contains(t, html, "<p>Your comment on &lt;b&gt;News&lt;/b&gt; was featured.</p>")
	assert.Contains(t, html, "<p>See it here:<br>https://news.test/a?commentId=1</p>")
	assert.Contains(t, html, `href="https://news.test/unsubscribe?token=abc"`)
}

func TestNotification_Minimal(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Notification(templates.NotificationLocals{Body: "hi"}))
	require.NoError(t, err)
	assert.Contains(t, html, "<p>hi</p>")
	assert.NotContains(t, html, "<h2>")
	assert.NotContains(t, html, "Unsubscribe")
}
