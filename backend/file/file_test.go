package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todopad/backend"
)

func newTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, context.Background()
}

// TestStoreImplementsInterface verifies the Store type implements KVStore.
func TestStoreImplementsInterface(t *testing.T) {
	var _ backend.KVStore = (*Store)(nil)
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", s.Dir(), dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected directory %s to exist", dir)
	}
}

func TestGetMissingKey(t *testing.T) {
	s, ctx := newTestStore(t)

	value, ok, err := s.Get(ctx, "todo-app")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok || value != nil {
		t.Errorf("Get on missing key = (%q, %v), want (nil, false)", value, ok)
	}
}

func TestSetWritesOneFilePerKey(t *testing.T) {
	s, ctx := newTestStore(t)

	payload := `[{"id":1,"title":"Buy milk","completed":false}]`
	if err := s.Set(ctx, "todo-app", []byte(payload)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), "todo-app.json"))
	if err != nil {
		t.Fatalf("expected todo-app.json: %v", err)
	}
	if string(data) != payload {
		t.Errorf("file content = %q, want %q", data, payload)
	}

	value, ok, err := s.Get(ctx, "todo-app")
	if err != nil || !ok || string(value) != payload {
		t.Errorf("Get = (%q, %v, %v)", value, ok, err)
	}
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	s, ctx := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := s.Set(ctx, "todo-app", []byte("[]")); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file, got %d", len(entries))
	}
}

func TestKeyCannotEscapeDirectory(t *testing.T) {
	s, _ := newTestStore(t)

	tests := []string{"../escape", "a/b", `..\..\x`, "..", ""}
	for _, key := range tests {
		p := s.keyPath(key)
		if filepath.Dir(p) != s.Dir() {
			t.Errorf("keyPath(%q) = %q, outside %q", key, p, s.Dir())
		}
		if strings.HasPrefix(filepath.Base(p), ".") {
			t.Errorf("keyPath(%q) = %q, should not be hidden", key, p)
		}
	}
}

func TestDelete(t *testing.T) {
	s, ctx := newTestStore(t)

	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete of missing key error: %v", err)
	}
	_ = s.Set(ctx, "k", []byte("v"))
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestClosedStore(t *testing.T) {
	s, ctx := newTestStore(t)
	_ = s.Close()

	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Get after Close error = %v, want ErrClosed", err)
	}
	if err := s.Set(ctx, "k", nil); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Set after Close error = %v, want ErrClosed", err)
	}
	if err := s.Delete(ctx, "k"); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Delete after Close error = %v, want ErrClosed", err)
	}
}

func TestRegistered(t *testing.T) {
	dir := t.TempDir()
	store, err := backend.Open("file", dir)
	if err != nil {
		t.Fatalf("Open(file) error: %v", err)
	}
	defer func() { _ = store.Close() }()

	fs, ok := store.(*Store)
	if !ok {
		t.Fatalf("Open(file) returned %T", store)
	}
	if fs.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", fs.Dir(), dir)
	}
}
