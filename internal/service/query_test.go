package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/service"
	mock_service "github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/service/mocks"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/storage/memory"
)

func seedAlert(t *testing.T, store *memory.AlertStore, category domain.AlertCategory, status domain.AlertStatus, createdAt time.Time) *domain.Alert {
	t.Helper()
	alert := &domain.Alert{
		ID:        uuid.New(),
		Category:  category,
		Status:    status,
		Priority:  domain.PriorityMedium,
		UserID:    uuid.New(),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := store.Put(context.Background(), alert); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return alert
}

func TestQuery_Find_EmptyFilterReturnsAllMostRecentFirst(t *testing.T) {
	t.Parallel()

	store := memory.NewAlertStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := seedAlert(t, store, domain.CategoryFire, domain.AlertPending, base)
	mid := seedAlert(t, store, domain.CategoryMedical, domain.AlertResolved, base.Add(time.Minute))
	newest := seedAlert(t, store, domain.CategorySOS, domain.AlertPending, base.Add(2*time.Minute))

	svc := service.NewQueryService(store, store, nil, testLogger())

	got, err := svc.Find(context.Background(), domain.AlertFilter{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 got=%d", len(got))
	}
	if got[0].ID != newest.ID || got[1].ID != mid.ID || got[2].ID != old.ID {
		t.Fatalf("expected most-recent-first ordering")
	}
}

func TestQuery_Find_StatusAndCategory(t *testing.T) {
	t.Parallel()

	store := memory.NewAlertStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedAlert(t, store, domain.CategoryFire, domain.AlertPending, base)
	want := seedAlert(t, store, domain.CategoryFire, domain.AlertResolved, base.Add(time.Minute))
	seedAlert(t, store, domain.CategoryMedical, domain.AlertResolved, base.Add(2*time.Minute))

	svc := service.NewQueryService(store, store, nil, testLogger())

	status := domain.AlertResolved
	category := domain.CategoryFire
	got, err := svc.Find(context.Background(), domain.AlertFilter{Status: &status, Category: &category})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].ID != want.ID {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestQuery_Find_Since(t *testing.T) {
	t.Parallel()

	store := memory.NewAlertStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedAlert(t, store, domain.CategoryFire, domain.AlertPending, base)
	recent := seedAlert(t, store, domain.CategoryFire, domain.AlertPending, base.Add(time.Hour))

	svc := service.NewQueryService(store, store, nil, testLogger())

	since := base.Add(30 * time.Minute)
	got, err := svc.Find(context.Background(), domain.AlertFilter{Since: &since})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].ID != recent.ID {
		t.Fatalf("since filter failed: %+v", got)
	}
}

func TestQuery_Get_Idempotent(t *testing.T) {
	t.Parallel()

	store := memory.NewAlertStore()
	alert := seedAlert(t, store, domain.CategoryFire, domain.AlertPending, time.Now().UTC())

	svc := service.NewQueryService(store, store, nil, testLogger())

	first, err := svc.Get(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := svc.Get(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.ID != second.ID || !first.UpdatedAt.Equal(second.UpdatedAt) || first.Status != second.Status {
		t.Fatalf("repeated get must return identical records")
	}
}

func TestQuery_Active_MergesPendingAndResponding(t *testing.T) {
	t.Parallel()

	store := memory.NewAlertStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pending := seedAlert(t, store, domain.CategoryFire, domain.AlertPending, base)
	responding := seedAlert(t, store, domain.CategoryMedical, domain.AlertResponding, base.Add(time.Minute))
	seedAlert(t, store, domain.CategorySOS, domain.AlertResolved, base.Add(2*time.Minute))

	svc := service.NewQueryService(store, store, nil, testLogger())

	got, err := svc.Active(context.Background())
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 active got=%d", len(got))
	}
	if got[0].ID != responding.ID || got[1].ID != pending.ID {
		t.Fatalf("active must be most-recent-first")
	}
}

func TestQuery_Active_CacheHitSkipsStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockAlertStore(ctrl)
	cache := mock_service.NewMockActiveAlertCache(ctrl)

	cached := []*domain.Alert{{ID: uuid.New(), Status: domain.AlertPending}}
	cache.EXPECT().GetActive(gomock.Any()).Return(cached, nil).Times(1)
	// no store expectations: a cache hit must not touch the store

	svc := service.NewQueryService(store, nil, cache, testLogger())

	got, err := svc.Active(context.Background())
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(got) != 1 || got[0].ID != cached[0].ID {
		t.Fatalf("expected cached result")
	}
}

func TestQuery_Active_CacheMissFillsCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewAlertStore()
	seedAlert(t, store, domain.CategoryFire, domain.AlertPending, time.Now().UTC())

	cache := mock_service.NewMockActiveAlertCache(ctrl)
	gomock.InOrder(
		cache.EXPECT().GetActive(gomock.Any()).Return(nil, nil).Times(1),
		cache.EXPECT().SetActive(gomock.Any(), gomock.Any()).Return(nil).Times(1),
	)

	svc := service.NewQueryService(store, store, cache, testLogger())

	got, err := svc.Active(context.Background())
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 active got=%d", len(got))
	}
}

func TestQuery_Stats_Counts(t *testing.T) {
	t.Parallel()

	store := memory.NewAlertStore()
	now := time.Now().UTC()
	seedAlert(t, store, domain.CategoryFire, domain.AlertPending, now.Add(-5*time.Minute))
	seedAlert(t, store, domain.CategoryFire, domain.AlertResolved, now.Add(-10*time.Minute))
	seedAlert(t, store, domain.CategorySOS, domain.AlertPending, now.Add(-25*time.Hour)) // outside window

	svc := service.NewQueryService(store, store, nil, testLogger())

	stats, err := svc.Stats(context.Background(), domain.StatsRequest{Minutes: 60})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("expected total=2 got=%d", stats.Total)
	}
	if stats.ByStatus[domain.AlertPending] != 1 || stats.ByStatus[domain.AlertResolved] != 1 {
		t.Fatalf("unexpected status counts: %+v", stats.ByStatus)
	}
	if stats.ByCategory[domain.CategoryFire] != 2 {
		t.Fatalf("unexpected category counts: %+v", stats.ByCategory)
	}
}

func TestContacts_Resolve_CopySemantics(t *testing.T) {
	t.Parallel()

	source := memory.NewContactSource()
	userID := uuid.New()
	source.SetContacts(userID, []domain.Contact{{Name: "Maria", Phone: "1", Relationship: "Mother", Primary: true}})

	svc := service.NewContactResolverService(source)

	got, err := svc.ResolveContacts(context.Background(), userID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 contact got=%d", len(got))
	}

	// mutating the returned slice must not affect a later resolve
	got[0].Name = "changed"
	again, _ := svc.ResolveContacts(context.Background(), userID)
	if again[0].Name != "Maria" {
		t.Fatalf("resolver must return copies")
	}
}

func TestContacts_Resolve_EmptyIsNotError(t *testing.T) {
	t.Parallel()

	svc := service.NewContactResolverService(memory.NewContactSource())

	got, err := svc.ResolveContacts(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("zero contacts must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list got=%+v", got)
	}
}
