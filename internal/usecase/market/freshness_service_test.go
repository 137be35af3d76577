package market

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"career-compass/internal/domain/market"
	"career-compass/internal/repository"
)

type stubMarkets struct {
	snapshot repository.RoleMarket
	err      error
	finds    int
}

func (m *stubMarkets) FindByRole(_ context.Context, role string) (repository.RoleMarket, error) {
	m.finds++
	if m.err != nil {
		return repository.RoleMarket{}, m.err
	}
	return m.snapshot, nil
}

func (m *stubMarkets) ReplaceForRole(context.Context, string, []market.Stat, int, string) error {
	return nil
}

func (m *stubMarkets) RolesAnalyzed(context.Context) (int, error) { return 0, nil }

type collectCall struct {
	role     string
	location string
}

type chanTrigger struct {
	calls chan collectCall
}

func newChanTrigger() *chanTrigger {
	return &chanTrigger{calls: make(chan collectCall, 1)}
}

func (c *chanTrigger) TriggerCollect(_ context.Context, role, location string) (string, error) {
	c.calls <- collectCall{role: role, location: location}
	return "task-1", nil
}

type stubLock struct {
	allow bool
	keys  []string
}

func (l *stubLock) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func waitForCall(t *testing.T, trigger *chanTrigger) collectCall {
	t.Helper()
	select {
	case c := <-trigger.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatalf("collector was not triggered")
		return collectCall{}
	}
}

func assertNoCall(t *testing.T, trigger *chanTrigger) {
	t.Helper()
	select {
	case c := <-trigger.calls:
		t.Fatalf("unexpected collector trigger: %+v", c)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFreshnessService_EnsureFresh_TriggersWhenMissing(t *testing.T) {
	markets := &stubMarkets{err: repository.ErrMarketNotFound}
	trigger := newChanTrigger()
	lock := &stubLock{allow: true}
	svc := NewFreshnessService(markets, trigger, lock, testLogger(), 24*time.Hour)

	svc.EnsureFresh(context.Background(), "Data Analyst", " Chicago ")

	call := waitForCall(t, trigger)
	if call.role != "data-analyst" {
		t.Fatalf("expected a normalized role, got %q", call.role)
	}
	if call.location != "Chicago" {
		t.Fatalf("expected a trimmed location, got %q", call.location)
	}
	if len(lock.keys) != 1 || lock.keys[0] != "market:refresh:lock:data-analyst" {
		t.Fatalf("unexpected lock keys: %v", lock.keys)
	}
}

func TestFreshnessService_EnsureFresh_TriggersWhenStale(t *testing.T) {
	markets := &stubMarkets{snapshot: repository.RoleMarket{
		TargetRole: "data-analyst",
		AnalyzedAt: time.Now().Add(-48 * time.Hour),
	}}
	trigger := newChanTrigger()
	svc := NewFreshnessService(markets, trigger, &stubLock{allow: true}, testLogger(), 24*time.Hour)

	svc.EnsureFresh(context.Background(), "data-analyst", "")

	if call := waitForCall(t, trigger); call.role != "data-analyst" {
		t.Fatalf("unexpected trigger: %+v", call)
	}
}

func TestFreshnessService_EnsureFresh_SkipsFreshSnapshot(t *testing.T) {
	markets := &stubMarkets{snapshot: repository.RoleMarket{
		TargetRole: "data-analyst",
		AnalyzedAt: time.Now().Add(-time.Hour),
	}}
	trigger := newChanTrigger()
	lock := &stubLock{allow: true}
	svc := NewFreshnessService(markets, trigger, lock, testLogger(), 24*time.Hour)

	svc.EnsureFresh(context.Background(), "data-analyst", "")

	assertNoCall(t, trigger)
	if len(lock.keys) != 0 {
		t.Fatalf("a fresh snapshot must not take the refresh lock, got %v", lock.keys)
	}
}

func TestFreshnessService_EnsureFresh_RespectsHeldLock(t *testing.T) {
	markets := &stubMarkets{err: repository.ErrMarketNotFound}
	trigger := newChanTrigger()
	svc := NewFreshnessService(markets, trigger, &stubLock{allow: false}, testLogger(), 24*time.Hour)

	svc.EnsureFresh(context.Background(), "data-analyst", "")

	assertNoCall(t, trigger)
}

func TestFreshnessService_EnsureFresh_IgnoresBlankRole(t *testing.T) {
	markets := &stubMarkets{err: repository.ErrMarketNotFound}
	trigger := newChanTrigger()
	svc := NewFreshnessService(markets, trigger, &stubLock{allow: true}, testLogger(), 24*time.Hour)

	svc.EnsureFresh(context.Background(), "   ", "")

	assertNoCall(t, trigger)
	if markets.finds != 0 {
		t.Fatalf("a blank role must not hit the store")
	}
}

func TestFreshnessService_EnsureFresh_NilReceiverIsSafe(t *testing.T) {
	var svc *FreshnessService
	svc.EnsureFresh(context.Background(), "data-analyst", "")

	partial := NewFreshnessService(&stubMarkets{err: repository.ErrMarketNotFound}, nil, nil, nil, 0)
	partial.EnsureFresh(context.Background(), "data-analyst", "")
}
