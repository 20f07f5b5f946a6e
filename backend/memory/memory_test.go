package memory

import (
	"context"
	"errors"
	"testing"

	"todopad/backend"
)

func TestStoreImplementsInterface(t *testing.T) {
	var _ backend.KVStore = (*Store)(nil)
}

func TestGetSetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}

	value := []byte("hello")
	if err := s.Set(ctx, "k", value); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	value[0] = 'j'

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	if string(got) != "hello" {
		t.Errorf("Get = %q, want %q (store must copy values)", got, "hello")
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestClosedStore(t *testing.T) {
	s := New()
	_ = s.Close()
	if err := s.Set(context.Background(), "k", nil); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Set after Close error = %v, want ErrClosed", err)
	}
}

func TestRegistered(t *testing.T) {
	store, err := backend.Open("memory", "")
	if err != nil {
		t.Fatalf("Open(memory) error: %v", err)
	}
	defer func() { _ = store.Close() }()
	if _, ok := store.(*Store); !ok {
		t.Errorf("Open(memory) returned %T", store)
	}
}
