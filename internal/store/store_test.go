package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "nexus.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestDB_GetMissing(t *testing.T) {
	db, _ := openTemp(t)

	data, ok, err := db.Get("nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || data != nil {
		t.Fatalf("Get(missing) = %q, %v; want nil, false", data, ok)
	}
}

func TestDB_PutOverwrite(t *testing.T) {
	db, _ := openTemp(t)

	if err := db.Put("k", []byte(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := db.Put("k", []byte(`{"v":2}`)); err != nil {
		t.Fatal(err)
	}

	data, ok, err := db.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if string(data) != `{"v":2}` {
		t.Errorf("Get = %s, want {\"v\":2}", data)
	}

	info, ok, err := db.Stat("k")
	if err != nil || !ok {
		t.Fatalf("Stat = %v, %v", ok, err)
	}
	if info.Revision != 2 {
		t.Errorf("Revision = %d, want 2", info.Revision)
	}
	if info.Size != int64(len(`{"v":2}`)) {
		t.Errorf("Size = %d, want %d", info.Size, len(`{"v":2}`))
	}
	if info.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestDB_PersistsAcrossReopen(t *testing.T) {
	db, path := openTemp(t)
	if err := db.Put("doc", []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db2.Close() }()

	data, ok, err := db2.Get("doc")
	if err != nil || !ok || string(data) != "hello" {
		t.Fatalf("Get after reopen = %q, %v, %v", data, ok, err)
	}
}

func TestDB_KeysAndDelete(t *testing.T) {
	db, _ := openTemp(t)
	for _, k := range []string{"b", "a", "c"} {
		if err := db.Put(k, []byte(k)); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Delete("b"); err != nil {
		t.Fatal(err)
	}
	if err := db.Delete("missing"); err != nil {
		t.Fatalf("Delete(missing) = %v, want nil", err)
	}

	keys, err := db.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("Keys = %v, want [a c]", keys)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	if _, ok, _ := m.Get("k"); ok {
		t.Fatal("empty store reported key")
	}

	buf := []byte("v1")
	if err := m.Put("k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'x' // caller mutation must not leak into the store

	data, ok, err := m.Get("k")
	if err != nil || !ok || string(data) != "v1" {
		t.Fatalf("Get = %q, %v, %v", data, ok, err)
	}

	m.FailPut = errors.New("disk full")
	if err := m.Put("k", []byte("v2")); err == nil {
		t.Fatal("Put with FailPut set returned nil")
	}
	data, _, _ = m.Get("k")
	if string(data) != "v1" {
		t.Errorf("failed Put changed data to %q", data)
	}
}
