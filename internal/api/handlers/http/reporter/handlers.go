package reporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/validator"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AlertCreator interface {
	Create(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error)
}

type LocationTracker interface {
	AppendLocation(ctx context.Context, id uuid.UUID, req domain.AppendLocationRequest) (*domain.Alert, error)
	SetPresence(ctx context.Context, id uuid.UUID, online bool) (*domain.Alert, error)
}

type ContactResolver interface {
	ResolveContacts(ctx context.Context, userID uuid.UUID) ([]domain.Contact, error)
}

type Handler struct {
	logger   *slog.Logger
	Alerts   AlertCreator
	Location LocationTracker
	Contacts ContactResolver
}

func NewHandler(logger *slog.Logger, alerts AlertCreator, location LocationTracker, contacts ContactResolver) *Handler {
	return &Handler{
		logger:   logger,
		Alerts:   alerts,
		Location: location,
		Contacts: contacts,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AlertCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertCreate", slog.String("remote", r.RemoteAddr))

	var req domain.CreateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		l.Warn("validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	l.Info("creating alert",
		slog.String("category", string(req.Category)),
		slog.Float64("lat", req.Latitude),
		slog.Float64("lng", req.Longitude),
		slog.String("user_id", req.UserID.String()),
	)

	alert, err := h.Alerts.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert created", slog.String("id", alert.ID.String()))
	h.writeJSON(w, http.StatusCreated, alert)
}

func (h *Handler) AlertAppendLocation(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.AppendLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	alert, err := h.Location.AppendLocation(r.Context(), id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) AlertPresence(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.PresenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	alert, err := h.Location.SetPresence(r.Context(), id, req.Online)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) ContactList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	idStr := chi.URLParam(r, "userId")
	userID, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid user id", slog.String("user_id", idStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	contacts, err := h.Contacts.ResolveContacts(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
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
