package sessiongate

import (
	"context"
	"testing"
	"time"
)

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithSecret(testSecret)

	if _, err := b.Build(); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second build to fail")
	}
}

func TestBuildRequiresSecret(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected build without secret to fail")
	}
}

func TestBuildDecodeThrottleRequiresRedis(t *testing.T) {
	b := New().WithSecret(testSecret).WithDecodeThrottle(true)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected throttle without redis to fail")
	}
}

func TestBuildClonesSecret(t *testing.T) {
	secret := append([]byte(nil), testSecret...)
	b := New().WithSecret(secret)

	// mutating the caller's buffer must not affect the built service
	secret[0] ^= 0xFF

	service, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer service.Close()

	store := newFakeStore()
	if err := service.CreateSession(context.Background(), store, "user-1", ""); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if service.GetSession(context.Background(), store) == nil {
		t.Fatal("round trip failed after caller mutated secret buffer")
	}
}

func TestWithConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Token.Secret = testSecret
	cfg.Token.TTL = time.Hour
	cfg.Cookie.Name = "app-session"

	service, err := New().WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer service.Close()

	store := newFakeStore()
	if err := service.CreateSession(context.Background(), store, "user-1", ""); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, ok := store.values["app-session"]; !ok {
		t.Fatal("configured cookie name not honored")
	}

	attrs := store.attrs["app-session"]
	if window := attrs.Expires.Sub(time.Now()); window > time.Hour || window < 59*time.Minute {
		t.Fatalf("configured TTL not honored: %v", window)
	}
}
