package responder_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/api/handlers/http/responder"
	mock_responder "github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/api/handlers/http/responder/mocks"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/e"
)

type responderMocks struct {
	lifecycle *mock_responder.MockAlertLifecycle
	queries   *mock_responder.MockAlertQueries
}

func setupRouter(t *testing.T) (*chi.Mux, responderMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := responderMocks{
		lifecycle: mock_responder.NewMockAlertLifecycle(ctrl),
		queries:   mock_responder.NewMockAlertQueries(ctrl),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := responder.NewHandler(logger, m.lifecycle, m.queries)

	r := chi.NewRouter()
	r.Get("/alerts", h.AlertList)
	r.Get("/alerts/active", h.AlertActive)
	r.Get("/alerts/{id}", h.AlertGet)
	r.Post("/alerts/{id}/acknowledge", h.AlertAcknowledge)
	r.Post("/alerts/{id}/resolve", h.AlertResolve)
	r.Post("/alerts/{id}/cancel", h.AlertCancel)
	r.Post("/alerts/{id}/priority", h.AlertEscalate)
	r.Get("/stats", h.AlertStats)
	return r, m
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.ContentLength = int64(buf.Len())
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAlertList_NoFilter(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	alerts := []*domain.Alert{{ID: uuid.New()}, {ID: uuid.New()}}
	m.queries.EXPECT().
		Find(gomock.Any(), domain.AlertFilter{}).
		Return(alerts, nil)

	rec := doJSON(t, router, http.MethodGet, "/alerts", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body domain.ListAlertsResponse
	decodeJSON(t, rec, &body)
	if body.Total != 2 || len(body.Alerts) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAlertList_StatusAndCategoryFilter(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	m.queries.EXPECT().
		Find(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filter domain.AlertFilter) ([]*domain.Alert, error) {
			if filter.Status == nil || *filter.Status != domain.AlertPending {
				t.Errorf("status filter not passed through: %+v", filter)
			}
			if filter.Category == nil || *filter.Category != domain.CategoryFire {
				t.Errorf("category filter not passed through: %+v", filter)
			}
			return nil, nil
		})

	rec := doJSON(t, router, http.MethodGet, "/alerts?status=pending&category=fire", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAlertList_InvalidStatus(t *testing.T) {
	t.Parallel()

	router, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/alerts?status=sleeping", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestAlertList_InvalidSince(t *testing.T) {
	t.Parallel()

	router, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/alerts?since=yesterday", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestAlertList_SinceParsed(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	since := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	m.queries.EXPECT().
		Find(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filter domain.AlertFilter) ([]*domain.Alert, error) {
			if filter.Since == nil || !filter.Since.Equal(since) {
				t.Errorf("since filter not passed through: %+v", filter)
			}
			return nil, nil
		})

	rec := doJSON(t, router, http.MethodGet, "/alerts?since=2026-05-01T08:00:00Z", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestAlertActive_OK(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	m.queries.EXPECT().
		Active(gomock.Any()).
		Return([]*domain.Alert{{ID: uuid.New(), Status: domain.AlertResponding}}, nil)

	rec := doJSON(t, router, http.MethodGet, "/alerts/active", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body domain.ListAlertsResponse
	decodeJSON(t, rec, &body)
	if body.Total != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAlertGet_OK(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	id := uuid.New()
	m.queries.EXPECT().
		Get(gomock.Any(), id).
		Return(&domain.Alert{ID: id}, nil)

	rec := doJSON(t, router, http.MethodGet, "/alerts/"+id.String(), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAlertGet_NotFound(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	id := uuid.New()
	m.queries.EXPECT().
		Get(gomock.Any(), id).
		Return(nil, fmt.Errorf("store: %w", e.ErrNotFound))

	rec := doJSON(t, router, http.MethodGet, "/alerts/"+id.String(), nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestAlertAcknowledge_OK(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	id := uuid.New()
	req := domain.AcknowledgeRequest{ResponderID: uuid.New(), ResponderName: "Unit 12"}
	m.lifecycle.EXPECT().
		Acknowledge(gomock.Any(), id, req).
		Return(&domain.Alert{ID: id, Status: domain.AlertResponding}, nil)

	rec := doJSON(t, router, http.MethodPost, "/alerts/"+id.String()+"/acknowledge", req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var got domain.Alert
	decodeJSON(t, rec, &got)
	if got.Status != domain.AlertResponding {
		t.Fatalf("unexpected status: %s", got.Status)
	}
}

func TestAlertAcknowledge_AlreadyTaken(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	id := uuid.New()
	m.lifecycle.EXPECT().
		Acknowledge(gomock.Any(), id, gomock.Any()).
		Return(nil, fmt.Errorf("lifecycle: %w", e.ErrInvalidTransition))

	rec := doJSON(t, router, http.MethodPost, "/alerts/"+id.String()+"/acknowledge",
		domain.AcknowledgeRequest{ResponderID: uuid.New(), ResponderName: "Unit 7"})

	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestAlertResolve_WithNotes(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	id := uuid.New()
	m.lifecycle.EXPECT().
		Resolve(gomock.Any(), id, domain.ResolveRequest{Notes: "patient stabilized"}).
		Return(&domain.Alert{ID: id, Status: domain.AlertResolved}, nil)

	rec := doJSON(t, router, http.MethodPost, "/alerts/"+id.String()+"/resolve",
		domain.ResolveRequest{Notes: "patient stabilized"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAlertResolve_EmptyBodyAllowed(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	id := uuid.New()
	m.lifecycle.EXPECT().
		Resolve(gomock.Any(), id, domain.ResolveRequest{}).
		Return(&domain.Alert{ID: id, Status: domain.AlertResolved}, nil)

	rec := doJSON(t, router, http.MethodPost, "/alerts/"+id.String()+"/resolve", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAlertCancel_OK(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	id := uuid.New()
	m.lifecycle.EXPECT().
		Cancel(gomock.Any(), id).
		Return(&domain.Alert{ID: id, Status: domain.AlertCancelled}, nil)

	rec := doJSON(t, router, http.MethodPost, "/alerts/"+id.String()+"/cancel", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAlertEscalate_DowngradeDenied(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	id := uuid.New()
	m.lifecycle.EXPECT().
		Escalate(gomock.Any(), id, domain.EscalateRequest{Priority: domain.PriorityLow}).
		Return(nil, fmt.Errorf("lifecycle: %w", e.ErrPriorityDowngrade))

	rec := doJSON(t, router, http.MethodPost, "/alerts/"+id.String()+"/priority",
		domain.EscalateRequest{Priority: domain.PriorityLow})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestAlertStats_DefaultWindow(t *testing.T) {
	t.Parallel()

	router, m := setupRouter(t)

	m.queries.EXPECT().
		Stats(gomock.Any(), domain.StatsRequest{Minutes: 60}).
		Return(&domain.AlertStats{Total: 3}, nil)

	rec := doJSON(t, router, http.MethodGet, "/stats", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var got domain.AlertStats
	decodeJSON(t, rec, &got)
	if got.Total != 3 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestAlertStats_MinutesOutOfRange(t *testing.T) {
	t.Parallel()

	router, _ := setupRouter(t)

	for _, q := range []string{"0", "-5", "5000", "abc"} {
		rec := doJSON(t, router, http.MethodGet, "/stats?minutes="+q, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("minutes=%s status=%d", q, rec.Code)
		}
	}
}
