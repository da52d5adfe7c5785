package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/models"
	"github.com/AnshRaj112/goalledger-backend/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.NewMemoryBackend(), time.Second)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func register(t *testing.T, accounts *AccountService, name, email string) models.PublicUser {
	t.Helper()
	u, err := accounts.Register(context.Background(), name, email, "secret123")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

type recordingPublisher struct {
	mu      sync.Mutex
	entries []models.ActivityEntry
	err     error
}

func (p *recordingPublisher) PublishActivity(ctx context.Context, entry models.ActivityEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
	return p.err
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccountService(openStore(t))

	u := register(t, accounts, "Asha", "Asha@Example.com")
	if u.ID != 1 || u.Email != "asha@example.com" {
		t.Fatalf("unexpected user %+v", u)
	}

	if _, err := accounts.Register(ctx, "Other", "ASHA@example.com", "secret123"); !errors.Is(err, ledger.ErrConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
	if _, err := accounts.Register(ctx, "Short", "short@example.com", "123"); !errors.Is(err, ledger.ErrValidation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	logged, err := accounts.Login(ctx, "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.LastLogin.IsZero() {
		t.Fatalf("expected lastLogin to be set")
	}

	if _, err := accounts.Login(ctx, "asha@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := accounts.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestGoalServicePublishesAfterSave(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	accounts := NewAccountService(s)
	owner := register(t, accounts, "Asha", "asha@example.com")

	pub := &recordingPublisher{err: errors.New("broker down")}
	goals := NewGoalService(s, ledger.New("INR"), pub)

	g, err := goals.Create(ctx, ledger.CreateGoalInput{UserID: owner.ID, Name: "Emergency Fund", Target: decimal.NewFromInt(50000), Current: decimal.NewFromInt(10000)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.Progress != 20 {
		t.Fatalf("expected progress 20, got %v", g.Progress)
	}

	g, err = goals.AddMoney(ctx, owner.ID, g.ID, decimal.NewFromInt(40000))
	if err != nil {
		t.Fatalf("add money: %v", err)
	}
	if !g.Current.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected balance capped at 50000, got %s", g.Current)
	}

	if _, err := goals.AddMoney(ctx, owner.ID, g.ID, decimal.Zero); !errors.Is(err, ledger.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := goals.Delete(ctx, owner.ID+1, g.ID); !errors.Is(err, ledger.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if len(pub.entries) != 2 {
		t.Fatalf("expected 2 published entries, got %d", len(pub.entries))
	}
	if pub.entries[1].Type != models.ActivityAddMoney || !strings.Contains(pub.entries[1].Description, "40000") {
		t.Fatalf("unexpected entry %+v", pub.entries[1])
	}
}

func TestGoalServiceRequiresExistingUser(t *testing.T) {
	goals := NewGoalService(openStore(t), ledger.New("INR"))
	_, err := goals.Create(context.Background(), ledger.CreateGoalInput{UserID: 42, Name: "Trip", Target: decimal.NewFromInt(100)})
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGoalServiceListsAndSummarizes(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	accounts := NewAccountService(s)
	a := register(t, accounts, "Asha", "asha@example.com")
	b := register(t, accounts, "Ben", "ben@example.com")

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	l := ledger.New("INR")
	l.Now = func() time.Time { return now }
	goals := NewGoalService(s, l)

	for _, in := range []ledger.CreateGoalInput{
		{UserID: a.ID, Name: "Laptop", Target: decimal.NewFromInt(1000), Current: decimal.NewFromInt(1000)},
		{UserID: b.ID, Name: "Bike", Target: decimal.NewFromInt(500)},
		{UserID: a.ID, Name: "Trip", Target: decimal.NewFromInt(3000), Current: decimal.NewFromInt(500)},
	} {
		if _, err := goals.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	list, err := goals.Goals(ctx, a.ID)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Laptop" || list[1].Name != "Trip" {
		t.Fatalf("unexpected goals %+v", list)
	}

	sum, err := goals.Summary(ctx, a.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalGoals != 2 || sum.Completed != 1 || !sum.TotalSaved.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected summary %+v", sum)
	}

	acts, err := goals.Activities(ctx, a.ID, 0)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	if len(acts) != 2 || acts[0].Description != "Created goal: Trip" || acts[0].Ago != "0 minutes ago" {
		t.Fatalf("unexpected activities %+v", acts)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 30 * time.Second, want: "0 minutes ago"},
		{ago: 5 * time.Minute, want: "5 minutes ago"},
		{ago: 3 * time.Hour, want: "3 hours ago"},
		{ago: 50 * time.Hour, want: "2 days ago"},
		{ago: 10 * 24 * time.Hour, want: "10 Mar 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := RelativeTime(now.Add(-tt.ago), now); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	revoked := NewMemoryRevocationList()
	revoked.Now = func() time.Time { return now }
	m := NewSessionManager("test-secret", revoked)
	m.Now = func() time.Time { return now }

	token, expires, err := m.CreateSession(7)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if !expires.Equal(now.Add(SessionDuration)) {
		t.Fatalf("unexpected expiry %v", expires)
	}

	sess, err := m.ValidateSession(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sess.UserID != 7 || sess.ID == "" {
		t.Fatalf("unexpected session %+v", sess)
	}

	other := NewSessionManager("other-secret", nil)
	if _, err := other.ValidateSession(ctx, token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected invalid session for wrong secret, got %v", err)
	}

	if err := m.InvalidateSession(ctx, sess); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := m.ValidateSession(ctx, token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected revoked session to fail, got %v", err)
	}

	fresh, _, err := m.CreateSession(7)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	m.Now = func() time.Time { return now.Add(SessionDuration + time.Minute) }
	if _, err := m.ValidateSession(ctx, fresh); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected expired session to fail, got %v", err)
	}
}

func TestActivityHubLocalFanOut(t *testing.T) {
	hub := NewActivityHub(nil)
	ch, unsubscribe := hub.Subscribe(3)

	if err := hub.PublishActivity(context.Background(), models.ActivityEntry{ID: 1, UserID: 4}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := hub.PublishActivity(context.Background(), models.ActivityEntry{ID: 2, UserID: 3, Type: models.ActivityCreateGoal}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case e := <-ch:
		if e.ID != 2 {
			t.Fatalf("expected entry 2, got %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for activity")
	}

	unsubscribe()
	unsubscribe()
	if hub.Subscribers(3) != 0 {
		t.Fatalf("expected no subscribers after unsubscribe")
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
}

type fakeProducer struct {
	exchange, routingKey string
	body                 interface{}
}

func (p *fakeProducer) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	p.exchange, p.routingKey, p.body = exchange, routingKey, body
	return nil
}

func (p *fakeProducer) Close() {}

func TestEventPublisherRoutesByType(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewEventPublisher(producer)
	entry := models.ActivityEntry{ID: 9, UserID: 2, Type: models.ActivityAddMoney, Description: "Added ₹5 to Trip", Timestamp: time.Now()}
	if err := pub.PublishActivity(context.Background(), entry); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if producer.exchange != LedgerEventsExchange || producer.routingKey != "activity.add_money" {
		t.Fatalf("unexpected route %s/%s", producer.exchange, producer.routingKey)
	}
	ev, ok := producer.body.(ActivityEvent)
	if !ok || ev.ActivityID != 9 || ev.UserID != 2 {
		t.Fatalf("unexpected body %#v", producer.body)
	}
}

type fakeUploader struct {
	name string
	data []byte
}

func (u *fakeUploader) UploadBackup(ctx context.Context, name string, data []byte) (string, error) {
	u.name, u.data = name, data
	return "https://example.com/" + name, nil
}

func TestBackupStripsCredentials(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	register(t, NewAccountService(s), "Asha", "asha@example.com")

	up := &fakeUploader{}
	b := NewBackupService(s, t.TempDir(), up)
	res, err := b.Run(ctx)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	raw, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if strings.Contains(string(raw), "password") {
		t.Fatalf("backup contains credential hashes: %s", raw)
	}
	var doc models.SanitizedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode backup: %v", err)
	}
	if len(doc.Users) != 1 {
		t.Fatalf("expected 1 user in backup, got %d", len(doc.Users))
	}
	if up.name != res.Name || res.URL == "" || res.Size != len(raw) {
		t.Fatalf("unexpected result %+v (uploaded %q)", res, up.name)
	}

	if _, err := b.Schedule("not a cron spec"); err == nil {
		t.Fatalf("expected invalid schedule error")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	u := register(t, NewAccountService(s), "Asha", "asha@example.com")
	goals := NewGoalService(s, ledger.New("INR"))
	if _, err := goals.Create(ctx, ledger.CreateGoalInput{UserID: u.ID, Name: "Trip", Target: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	stats, err := Stats(ctx, s)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 1 || stats.TotalGoals != 1 || stats.TotalActivities != 1 || stats.DatabaseSize == 0 || stats.Backend != "memory" {
		t.Fatalf("unexpected stats %+v", stats)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	encoded, err := store.Encode(snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if stats.DatabaseSize != len(encoded) {
		t.Fatalf("expected size %d of the persisted encoding, got %d", len(encoded), stats.DatabaseSize)
	}
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccountService(openStore(t), " Ops@Example.com ", "")
	ops := register(t, accounts, "Ops", "ops@example.com")
	user := register(t, accounts, "Asha", "asha@example.com")

	for _, tt := range []struct {
		id   int64
		want bool
	}{
		{ops.ID, true},
		{user.ID, false},
		{42, false},
	} {
		got, err := accounts.IsAdmin(ctx, tt.id)
		if err != nil || got != tt.want {
			t.Fatalf("IsAdmin(%d) = %v, %v; want %v", tt.id, got, err, tt.want)
		}
	}

	none := NewAccountService(openStore(t))
	if ok, err := none.IsAdmin(ctx, ops.ID); ok || err != nil {
		t.Fatalf("expected no admins without configuration, got %v %v", ok, err)
	}
}
