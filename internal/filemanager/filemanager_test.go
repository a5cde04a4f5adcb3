package filemanager

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

type testDoc struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

func TestManager_ReadWrite(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nested", "doc.yaml")
	mgr := NewManager[testDoc]()

	data := &testDoc{Name: "test", Value: 42}
	if err := mgr.Write(context.Background(), testFile, data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := mgr.Read(context.Background(), testFile)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if *got != *data {
		t.Errorf("Read data mismatch: got %+v, want %+v", got, data)
	}

	// Overwrite replaces the whole document
	if err := mgr.Write(context.Background(), testFile, &testDoc{Name: "second"}); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}
	got, err = mgr.Read(context.Background(), testFile)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Name != "second" || got.Value != 0 {
		t.Errorf("Read after overwrite = %+v", got)
	}
}

func TestManager_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "doc.yaml")

	if err := NewManager[testDoc]().Write(context.Background(), testFile, &testDoc{Name: "x"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestManager_ReadMissing(t *testing.T) {
	_, err := NewManager[testDoc]().Read(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read() error = %v, want not-exist", err)
	}
}

func TestManager_ReadInvalidYAML(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(testFile, []byte("name: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewManager[testDoc]().Read(context.Background(), testFile); err == nil {
		t.Error("Read() should fail on invalid yaml")
	}
}

func TestManager_LockTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("lock semantics differ on windows")
	}

	testFile := filepath.Join(t.TempDir(), "doc.yaml")
	mgr := NewManagerWithTimeout[testDoc](100 * time.Millisecond)
	if err := mgr.Write(context.Background(), testFile, &testDoc{Name: "test"}); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}

	holder := flock.New(LockPath(testFile))
	if err := holder.Lock(); err != nil {
		t.Fatalf("failed to hold lock: %v", err)
	}
	defer func() { _ = holder.Unlock() }()

	err := mgr.Write(context.Background(), testFile, &testDoc{Name: "blocked"})
	if !errors.Is(err, ErrLockTimeout) {
		t.Errorf("Write() error = %v, want ErrLockTimeout", err)
	}
}
