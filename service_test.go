package sessiongate

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeStore records every CookieStore interaction for assertions.
type fakeStore struct {
	values  map[string]string
	attrs   map[string]Attributes
	sets    int
	deletes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		values: map[string]string{},
		attrs:  map[string]Attributes{},
	}
}

func (s *fakeStore) Get(name string) (string, bool) {
	value, ok := s.values[name]
	return value, ok && value != ""
}

func (s *fakeStore) Set(name, value string, attrs Attributes) {
	s.values[name] = value
	s.attrs[name] = attrs
	s.sets++
}

func (s *fakeStore) Delete(name string) {
	delete(s.values, name)
	delete(s.attrs, name)
	s.deletes++
}

func newTestService(t *testing.T, mutate ...func(*Builder)) *Service {
	t.Helper()

	b := New().WithSecret(testSecret).WithMetricsEnabled(true)
	for _, m := range mutate {
		m(b)
	}

	service, err := b.Build()
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	t.Cleanup(service.Close)

	return service
}

func TestCreateSessionSetsCookieAttributes(t *testing.T) {
	service := newTestService(t)
	store := newFakeStore()

	if err := service.CreateSession(context.Background(), store, "user-1", "alice@example.com"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if store.sets != 1 {
		t.Fatalf("expected exactly one cookie write, got %d", store.sets)
	}
	if _, ok := store.values["auth-token"]; !ok {
		t.Fatal("cookie not written under the fixed name")
	}

	attrs := store.attrs["auth-token"]
	if !attrs.HttpOnly {
		t.Fatal("cookie must be httpOnly")
	}
	if attrs.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected sameSite=lax, got %d", attrs.SameSite)
	}
	if attrs.Path != "/" {
		t.Fatalf("expected path '/', got %q", attrs.Path)
	}
	if attrs.Secure {
		t.Fatal("secure must be false outside production")
	}
}

func TestCreateSessionSecureOnlyInProduction(t *testing.T) {
	service := newTestService(t, func(b *Builder) {
		b.WithEnvironment(EnvProduction)
	})
	store := newFakeStore()

	if err := service.CreateSession(context.Background(), store, "user-1", ""); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if !store.attrs["auth-token"].Secure {
		t.Fatal("secure must be true in production")
	}
}

func TestCookieExpiryMirrorsTokenWindow(t *testing.T) {
	service := newTestService(t)
	store := newFakeStore()

	before := time.Now()
	if err := service.CreateSession(context.Background(), store, "user-1", ""); err != nil {
		t.Fatalf("create session: %v", err)
	}
	after := time.Now()

	const window = 7 * 24 * time.Hour
	expires := store.attrs["auth-token"].Expires
	if expires.Before(before.Add(window)) || expires.After(after.Add(window)) {
		t.Fatalf("cookie expiry %v outside the 7-day window", expires)
	}
}

func TestGetSessionNilWhenNoCookie(t *testing.T) {
	service := newTestService(t)

	if payload := service.GetSession(context.Background(), newFakeStore()); payload != nil {
		t.Fatal("expected nil payload without a cookie")
	}
	if service.metrics.Value(MetricSessionMissing) != 1 {
		t.Fatal("missing-cookie metric not incremented")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	service := newTestService(t)
	store := newFakeStore()
	ctx := context.Background()

	if err := service.CreateSession(ctx, store, "user-1", "alice@example.com"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	payload := service.GetSession(ctx, store)
	if payload == nil {
		t.Fatal("expected payload for freshly issued session")
	}
	if payload.UserID != "user-1" || payload.Email != "alice@example.com" {
		t.Fatalf("claims mismatch: %+v", payload)
	}
	if service.metrics.Value(MetricSessionValidated) != 1 {
		t.Fatal("validated metric not incremented")
	}
}

func TestGetSessionRejectsGarbage(t *testing.T) {
	service := newTestService(t)
	store := newFakeStore()
	store.Set("auth-token", "not-a-valid-token", Attributes{})

	if payload := service.GetSession(context.Background(), store); payload != nil {
		t.Fatal("expected nil payload for malformed token")
	}
	if service.metrics.Value(MetricTokenMalformed) != 1 {
		t.Fatal("malformed metric not incremented")
	}
}

func TestGetSessionRejectsForeignSecret(t *testing.T) {
	signer := newTestService(t)
	verifier := newTestService(t, func(b *Builder) {
		b.WithSecret([]byte("ffffffffffffffffffffffffffffffff"))
	})

	store := newFakeStore()
	ctx := context.Background()
	if err := signer.CreateSession(ctx, store, "user-1", ""); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if payload := verifier.GetSession(ctx, store); payload != nil {
		t.Fatal("expected nil payload for foreign-secret token")
	}
	if verifier.metrics.Value(MetricTokenBadSignature) != 1 {
		t.Fatal("bad-signature metric not incremented")
	}
}

func TestGetSessionRejectsExpired(t *testing.T) {
	clk := newFakeClock()
	service := newTestService(t, func(b *Builder) {
		b.WithClock(clk.Now)
	})

	store := newFakeStore()
	ctx := context.Background()
	if err := service.CreateSession(ctx, store, "user-1", ""); err != nil {
		t.Fatalf("create session: %v", err)
	}

	clk.Advance(7*24*time.Hour + time.Second)

	if payload := service.GetSession(ctx, store); payload != nil {
		t.Fatal("expected nil payload past expiry")
	}
	if service.metrics.Value(MetricTokenExpired) != 1 {
		t.Fatal("expired metric not incremented")
	}
}

func TestDeleteSessionRemovesCookie(t *testing.T) {
	service := newTestService(t)
	store := newFakeStore()
	ctx := context.Background()

	if err := service.CreateSession(ctx, store, "user-1", ""); err != nil {
		t.Fatalf("create session: %v", err)
	}

	service.DeleteSession(ctx, store)
	if store.deletes != 1 {
		t.Fatalf("expected one delete, got %d", store.deletes)
	}
	if payload := service.GetSession(ctx, store); payload != nil {
		t.Fatal("expected nil payload after deletion")
	}

	// idempotent
	service.DeleteSession(ctx, store)
	if service.metrics.Value(MetricSessionDeleted) != 2 {
		t.Fatal("delete metric mismatch")
	}
}

func TestCreateSessionRequiresUserID(t *testing.T) {
	service := newTestService(t)

	if err := service.CreateSession(context.Background(), newFakeStore(), "", ""); err == nil {
		t.Fatal("expected empty userID to be rejected")
	}
	if err := service.CreateSession(context.Background(), nil, "user-1", ""); err == nil {
		t.Fatal("expected nil store to be rejected")
	}
}

func TestAuditEventsEmitted(t *testing.T) {
	sink := NewChannelSink(16)
	service := newTestService(t, func(b *Builder) {
		b.WithAuditSink(sink)
	})

	store := newFakeStore()
	ctx := WithClientIP(context.Background(), "10.1.2.3")
	if err := service.CreateSession(ctx, store, "user-1", "alice@example.com"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	service.Close()

	select {
	case event := <-sink.Events():
		if event.EventType != EventSessionIssued {
			t.Fatalf("unexpected event type %q", event.EventType)
		}
		if event.UserID != "user-1" || event.IP != "10.1.2.3" || !event.Success {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("no audit event received")
	}
}
