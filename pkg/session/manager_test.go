package session

import (
	"context"
	"testing"
	"time"
)

type fakeStore struct {
	keys    map[string]bool
	touched []string
}

func (f *fakeStore) SetNX(_ context.Context, key string, _ any, _ time.Duration) (bool, error) {
	if f.keys == nil {
		f.keys = map[string]bool{}
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeStore) Expire(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.touched = append(f.touched, key)
	return true, nil
}

func (f *fakeStore) SessionKey(sessionID string) string {
	return "vl:session:" + sessionID
}

func TestNewManagerRequiresTTL(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(nil, 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestMintRegistersSession(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	mgr, err := NewManager(store, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id := mgr.Mint(context.Background())
	if id == "" {
		t.Fatal("expected a session id")
	}
	if !store.keys[store.SessionKey(id)] {
		t.Fatal("expected session to be registered")
	}
}

func TestTouchExtendsExistingSession(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	mgr, err := NewManager(store, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mgr.Touch(context.Background(), "abc")
	mgr.Touch(context.Background(), "abc")

	if len(store.touched) != 1 {
		t.Fatalf("expected one expire call for the repeat touch, got %d", len(store.touched))
	}
}

func TestTouchWithoutStoreIsNoop(t *testing.T) {
	t.Parallel()

	mgr, err := NewManager(nil, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mgr.Touch(context.Background(), "abc")
}
