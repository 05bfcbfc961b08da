package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
)

// AuditLogHandler records every event as one structured log line.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler. If logger is nil, the
// default logger is used.
func NewAuditLogHandler(l *slog.Logger) *AuditLogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &AuditLogHandler{logger: l.With(slog.String("component", "audit"))}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *Event) error {
	var payload map[string]any
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("learning event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("learner_id", event.LearnerID.String()),
		slog.Time("created_at", event.CreatedAt),
		slog.Any("payload", payload))
	return nil
}
