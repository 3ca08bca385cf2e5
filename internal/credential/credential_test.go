package credential

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, err := s.Load(); err != nil || ok {
		t.Fatalf("Load() on empty store = ok=%v err=%v, want absent", ok, err)
	}

	want := Credential{Token: "tok-123", Role: "admin"}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v err=%v, want present", ok, err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, ok, _ := s.Load(); ok {
		t.Error("Load() after Clear() still present")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credential.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if _, ok, err := s.Load(); err != nil || ok {
		t.Fatalf("Load() before Save() = ok=%v err=%v, want absent", ok, err)
	}

	want := Credential{Token: "tok-456", Role: "admin"}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat credential file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("credential file mode = %o, want 600", perm)
	}

	got, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v err=%v, want present", ok, err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestFileStoreClearIsIdempotent(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "credential.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() on empty store error: %v", err)
	}

	if err := s.Save(Credential{Token: "tok"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear() error: %v", err)
	}
}

func TestFileStoreEmptyTokenMeansAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	if err := os.WriteFile(path, []byte(`{"token":""}`), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if _, ok, err := s.Load(); err != nil || ok {
		t.Errorf("Load() = ok=%v err=%v, want absent for empty token", ok, err)
	}
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if _, _, err := s.Load(); err == nil {
		t.Error("Load() on corrupt file = nil error, want parse error")
	}
}
