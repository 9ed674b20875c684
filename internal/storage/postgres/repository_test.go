//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := setupSchema(ctx, testPool); err != nil {
		fmt.Println("setupSchema:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func setupSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS alerts (
			id uuid PRIMARY KEY,
			category text NOT NULL,
			description text NOT NULL,
			latitude double precision NOT NULL,
			longitude double precision NOT NULL,
			address text NOT NULL,
			accuracy double precision,
			location_history jsonb NOT NULL DEFAULT '[]',
			last_location_at timestamptz NOT NULL,
			online boolean NOT NULL DEFAULT true,
			user_id uuid NOT NULL,
			user_name text NOT NULL,
			user_phone text NOT NULL,
			contacts jsonb NOT NULL DEFAULT '[]',
			contacts_missing boolean NOT NULL DEFAULT false,
			priority text NOT NULL,
			status text NOT NULL,
			responder_id uuid,
			responder_name text NOT NULL DEFAULT '',
			response_time timestamptz,
			resolved_time timestamptz,
			notes text NOT NULL DEFAULT '',
			created_at timestamptz NOT NULL,
			updated_at timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS user_contacts (
			user_id uuid NOT NULL,
			position int NOT NULL,
			name text NOT NULL,
			phone text NOT NULL,
			relationship text NOT NULL DEFAULT 'Other',
			is_primary boolean NOT NULL DEFAULT false,
			PRIMARY KEY (user_id, position)
		);
	`)
	return err
}

func truncateAlerts(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE alerts, user_contacts`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleAlert(createdAt time.Time) *domain.Alert {
	return &domain.Alert{
		ID:          uuid.New(),
		Category:    domain.CategoryMedical,
		Description: "medical emergency reported",
		Location: domain.Location{
			Latitude:  14.5995,
			Longitude: 120.9842,
			Address:   "Not provided",
		},
		LocationHistory: []domain.LocationSample{
			{Latitude: 14.5995, Longitude: 120.9842, Timestamp: createdAt},
		},
		LastLocationAt: createdAt,
		Online:         true,
		UserID:         uuid.New(),
		UserName:       "Anonymous",
		UserPhone:      "Not provided",
		Contacts: []domain.Contact{
			{Name: "Maria Rodriguez", Phone: "+15550001", Relationship: "Mother", Primary: true},
		},
		Priority:  domain.PriorityMedium,
		Status:    domain.AlertPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestAlertStore_PutGet_RoundTrip(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())

	now := time.Now().UTC().Truncate(time.Microsecond)
	alert := sampleAlert(now)

	if err := repo.Put(context.Background(), alert); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := repo.Get(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Category != alert.Category || got.Status != alert.Status || got.Priority != alert.Priority {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Location.Latitude != alert.Location.Latitude || got.Location.Longitude != alert.Location.Longitude {
		t.Fatalf("location mismatch: %+v", got.Location)
	}
	if len(got.LocationHistory) != 1 {
		t.Fatalf("expected seeded history, got %d samples", len(got.LocationHistory))
	}
	if len(got.Contacts) != 1 || got.Contacts[0].Name != "Maria Rodriguez" {
		t.Fatalf("contact snapshot mismatch: %+v", got.Contacts)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at mismatch got=%v want=%v", got.CreatedAt, now)
	}
}

func TestAlertStore_Put_DuplicateID(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())
	alert := sampleAlert(time.Now().UTC())

	if err := repo.Put(context.Background(), alert); err != nil {
		t.Fatalf("Put: %v", err)
	}
	err := repo.Put(context.Background(), alert)
	if !errors.Is(err, e.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got: %v", err)
	}
}

func TestAlertStore_Get_NotFound(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())

	_, err := repo.Get(context.Background(), uuid.New())
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestAlertStore_Update_AppliesMutation(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())
	alert := sampleAlert(time.Now().UTC().Truncate(time.Microsecond))
	if err := repo.Put(context.Background(), alert); err != nil {
		t.Fatalf("Put: %v", err)
	}

	responderID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	updated, err := repo.Update(context.Background(), alert.ID, func(a *domain.Alert) error {
		a.Status = domain.AlertResponding
		a.ResponderID = &responderID
		a.ResponderName = "Unit 12"
		a.ResponseTime = &now
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.AlertResponding {
		t.Fatalf("expected responding, got %s", updated.Status)
	}

	got, err := repo.Get(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.AlertResponding || got.ResponderID == nil || *got.ResponderID != responderID {
		t.Fatalf("mutation not persisted: %+v", got)
	}
	if got.ResponseTime == nil || !got.ResponseTime.Equal(now) {
		t.Fatalf("response_time mismatch: %v", got.ResponseTime)
	}
}

func TestAlertStore_Update_MutatorErrorRollsBack(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())
	alert := sampleAlert(time.Now().UTC())
	if err := repo.Put(context.Background(), alert); err != nil {
		t.Fatalf("Put: %v", err)
	}

	wantErr := errors.New("rejected")
	_, err := repo.Update(context.Background(), alert.ID, func(a *domain.Alert) error {
		a.Status = domain.AlertResolved
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected mutator error, got: %v", err)
	}

	got, err := repo.Get(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.AlertPending {
		t.Fatalf("rolled-back update changed the row: %s", got.Status)
	}
}

func TestAlertStore_Update_NotFound(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())

	_, err := repo.Update(context.Background(), uuid.New(), func(a *domain.Alert) error { return nil })
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestAlertStore_Update_ContactSnapshotImmutable(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())
	alert := sampleAlert(time.Now().UTC())
	if err := repo.Put(context.Background(), alert); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, err := repo.Update(context.Background(), alert.ID, func(a *domain.Alert) error {
		a.Contacts = nil
		a.Notes = "tampering with the snapshot"
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Contacts) != 1 || got.Contacts[0].Name != "Maria Rodriguez" {
		t.Fatalf("contact snapshot must survive updates: %+v", got.Contacts)
	}
	if got.Notes != "tampering with the snapshot" {
		t.Fatalf("other fields should still update: %q", got.Notes)
	}
}

func TestAlertStore_Update_ConcurrentSerialized(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())
	alert := sampleAlert(time.Now().UTC())
	if err := repo.Put(context.Background(), alert); err != nil {
		t.Fatalf("Put: %v", err)
	}

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(context.Background(), alert.ID, func(a *domain.Alert) error {
				a.LocationHistory = append(a.LocationHistory, domain.LocationSample{
					Latitude: 14.6, Longitude: 120.98, Timestamp: time.Now().UTC(),
				})
				return nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.Get(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// one seed sample plus one per writer, none lost under FOR UPDATE
	if len(got.LocationHistory) != n+1 {
		t.Fatalf("lost updates: expected %d samples got %d", n+1, len(got.LocationHistory))
	}
}

func TestAlertStore_List_FiltersAndOrder(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	a := sampleAlert(base)
	b := sampleAlert(base.Add(time.Minute))
	b.Category = domain.CategoryFire
	c := sampleAlert(base.Add(2 * time.Minute))
	c.Status = domain.AlertResolved

	for _, al := range []*domain.Alert{a, b, c} {
		if err := repo.Put(context.Background(), al); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	all, err := repo.List(context.Background(), domain.AlertFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 got %d", len(all))
	}
	if all[0].ID != c.ID || all[2].ID != a.ID {
		t.Fatalf("expected created_at DESC order")
	}

	status := domain.AlertPending
	category := domain.CategoryFire
	filtered, err := repo.List(context.Background(), domain.AlertFilter{Status: &status, Category: &category})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != b.ID {
		t.Fatalf("combined filter failed: %+v", filtered)
	}

	since := base.Add(90 * time.Second)
	recent, err := repo.List(context.Background(), domain.AlertFilter{Since: &since})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != c.ID {
		t.Fatalf("since filter failed: %+v", recent)
	}
}

func TestAlertStore_List_EmptyIsNonNil(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())

	got, err := repo.List(context.Background(), domain.AlertFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("empty result must be a non-nil slice, got %#v", got)
	}
}

func TestContactSource_OrderedByPosition(t *testing.T) {
	truncateAlerts(t)

	userID := uuid.New()
	rows := [][]any{
		{userID, 2, "Carlos Rodriguez", "+15550002", "Father", false},
		{userID, 1, "Maria Rodriguez", "+15550001", "Mother", true},
	}
	for _, r := range rows {
		_, err := testPool.Exec(context.Background(), `
			INSERT INTO user_contacts (user_id, position, name, phone, relationship, is_primary)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, r...)
		if err != nil {
			t.Fatalf("insert contact: %v", err)
		}
	}

	src := NewContactSource(testPool, testLogger())
	contacts, err := src.Contacts(context.Background(), userID)
	if err != nil {
		t.Fatalf("Contacts: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts got %d", len(contacts))
	}
	if contacts[0].Name != "Maria Rodriguez" || !contacts[0].Primary {
		t.Fatalf("expected position order, got %+v", contacts)
	}
}

func TestContactSource_UnknownUserIsEmpty(t *testing.T) {
	truncateAlerts(t)

	src := NewContactSource(testPool, testLogger())
	contacts, err := src.Contacts(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Contacts: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("expected empty slice got %+v", contacts)
	}
}

func TestStats_CountSince(t *testing.T) {
	truncateAlerts(t)

	repo := NewAlertStore(testPool, testLogger())
	now := time.Now().UTC()

	recent := sampleAlert(now.Add(-10 * time.Minute))
	recentFire := sampleAlert(now.Add(-5 * time.Minute))
	recentFire.Category = domain.CategoryFire
	recentFire.Status = domain.AlertResolved
	old := sampleAlert(now.Add(-3 * time.Hour))

	for _, al := range []*domain.Alert{recent, recentFire, old} {
		if err := repo.Put(context.Background(), al); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	stat := NewStats(testPool, testLogger())
	got, err := stat.CountSince(context.Background(), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if got.Total != 2 {
		t.Fatalf("expected total=2 got=%d", got.Total)
	}
	if got.ByStatus[domain.AlertPending] != 1 || got.ByStatus[domain.AlertResolved] != 1 {
		t.Fatalf("by-status mismatch: %+v", got.ByStatus)
	}
	if got.ByCategory[domain.CategoryFire] != 1 {
		t.Fatalf("by-category mismatch: %+v", got.ByCategory)
	}
}
