package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

type dispatchKey struct{}

func TestLogHandlerDecorator(t *testing.T) {
	t.Run("context value survives WithAttrs and WithGroup", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextValue("dispatch_id", dispatchKey{}),
		)

		ctx := context.WithValue(context.Background(), dispatchKey{}, "d-42")
		log.With(slog.String("component", "notifications")).InfoContext(ctx, "dispatched")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "d-42", entry["dispatch_id"])
		assert.Equal(t, "notifications", entry["component"])
	})

	t.Run("missing context value adds nothing", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextValue("dispatch_id", dispatchKey{}),
		)

		log.InfoContext(context.Background(), "no value")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.NotContains(t, entry, "dispatch_id")
	})

	t.Run("nil extractors are ignored", func(t *testing.T) {
		h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(&bytes.Buffer{}, nil), nil)
		assert.NotPanics(t, func() {
			_ = slog.New(h)
			slog.New(h).Info("ok")
		})
	})
}
