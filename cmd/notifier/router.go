package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/httpserver"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/unsubscribe"
)

// maxEventBody caps the payload accepted by the event ingestion endpoint.
const maxEventBody = 1 << 20

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(a.log, a.checks))

	r.Post("/events/{name}", publishHandler(a.publisher, a.log))
	r.Get("/notifications/unsubscribe", unsubscribe.ConfirmHandler(a.issuer, a.log))
	r.Post("/notifications/unsubscribe", unsubscribe.Handler(a.issuer, a.revocations, a.comments, a.log))

	return r
}

// publishHandler forwards the JSON request body as the payload of the named
// event. With the in-process bus the response is sent after dispatch
// finished.
func publishHandler(pub events.Publisher, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBody))
		if err != nil {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "payload too large"})
			return
		}
		if len(body) == 0 || !json.Valid(body) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "payload must be a JSON document"})
			return
		}

		err = pub.Publish(r.Context(), name, json.RawMessage(body))
		switch {
		case err == nil:
			writeJSON(w, http.StatusAccepted, publishResponse{Event: name})
		case errors.Is(err, events.ErrEmptyEventName), errors.Is(err, events.ErrInvalidPayload):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			log.ErrorContext(r.Context(), "failed to publish event", logger.Event(name), logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to publish event"})
		}
	}
}

type publishResponse struct {
	Event string `json:"event"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestIDExtractor adds chi's request id to every log record written
// while serving a request.
func requestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
