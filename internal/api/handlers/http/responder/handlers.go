package responder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AlertLifecycle interface {
	Acknowledge(ctx context.Context, id uuid.UUID, req domain.AcknowledgeRequest) (*domain.Alert, error)
	Resolve(ctx context.Context, id uuid.UUID, req domain.ResolveRequest) (*domain.Alert, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Escalate(ctx context.Context, id uuid.UUID, req domain.EscalateRequest) (*domain.Alert, error)
}

type AlertQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Find(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error)
	Active(ctx context.Context) ([]*domain.Alert, error)
	Stats(ctx context.Context, req domain.StatsRequest) (*domain.AlertStats, error)
}

type Handler struct {
	logger    *slog.Logger
	Lifecycle AlertLifecycle
	Queries   AlertQueries
}

func NewHandler(logger *slog.Logger, lifecycle AlertLifecycle, queries AlertQueries) *Handler {
	return &Handler{
		logger:    logger,
		Lifecycle: lifecycle,
		Queries:   queries,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

// AlertList filters by status, category and a since timestamp (RFC 3339).
// No filter at all returns the full history, most recent first.
func (h *Handler) AlertList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	var filter domain.AlertFilter
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status := domain.AlertStatus(v)
		switch status {
		case domain.AlertPending, domain.AlertResponding, domain.AlertResolved, domain.AlertCancelled:
			filter.Status = &status
		default:
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
	}
	if v := q.Get("category"); v != "" {
		category := domain.AlertCategory(v)
		if !category.Valid() {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category"})
			return
		}
		filter.Category = &category
	}
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "since must be RFC 3339"})
			return
		}
		filter.Since = &since
	}

	alerts, err := h.Queries.Find(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alerts listed", slog.Int("count", len(alerts)))
	h.writeJSON(w, http.StatusOK, domain.ListAlertsResponse{Alerts: alerts, Total: len(alerts)})
}

// AlertActive is the dashboard's cached pending+responding view.
func (h *Handler) AlertActive(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Queries.Active(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, domain.ListAlertsResponse{Alerts: alerts, Total: len(alerts)})
}

func (h *Handler) AlertGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	alert, err := h.Queries.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) AlertAcknowledge(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.AcknowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	alert, err := h.Lifecycle.Acknowledge(r.Context(), id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert acknowledged", slog.String("id", id.String()), slog.String("responder", req.ResponderName))
	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) AlertResolve(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.ResolveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Warn("invalid JSON", slog.String("error", err.Error()))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
			return
		}
	}

	alert, err := h.Lifecycle.Resolve(r.Context(), id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert resolved", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) AlertCancel(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	alert, err := h.Lifecycle.Cancel(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert cancelled", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) AlertEscalate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.EscalateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	alert, err := h.Lifecycle.Escalate(r.Context(), id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert escalated", slog.String("id", id.String()), slog.String("priority", string(req.Priority)))
	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) AlertStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	minutesStr := r.URL.Query().Get("minutes")
	if minutesStr == "" {
		minutesStr = "60"
	}
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes <= 0 || minutes > 1440 {
		l.Warn("invalid minutes", slog.String("minutes", minutesStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "minutes must be 1-1440"})
		return
	}

	stats, err := h.Queries.Stats(r.Context(), domain.StatsRequest{Minutes: minutes})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("stats success", slog.Int("minutes", minutes))
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) alertID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
