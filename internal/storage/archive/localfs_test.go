// internal/storage/archive/localfs_test.go
package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/newthinker/pnlboard/internal/core"
)

func TestLocalFS_ImplementsStorage(t *testing.T) {
	var _ Storage = (*LocalFS)(nil)
}

func TestLocalFS_WriteRead(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}

	ctx := context.Background()
	data := []byte(`{"id":"a"}`)

	if err := fs.Write(ctx, "snapshots/2025/05/a.json", data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := fs.Read(ctx, "snapshots/2025/05/a.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestLocalFS_ReadMissing(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())

	_, err := fs.Read(context.Background(), "snapshots/none.json")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestLocalFS_RejectsEscapingPaths(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())

	err := fs.Write(context.Background(), "../outside.json", []byte("x"))
	if !errors.Is(err, core.ErrArchiveFailed) {
		t.Errorf("expected ARCHIVE_FAILED, got %v", err)
	}
}

func TestLocalFS_EmptyBasePath(t *testing.T) {
	if _, err := NewLocalFS(""); !errors.Is(err, core.ErrConfigMissing) {
		t.Errorf("expected CONFIG_MISSING, got %v", err)
	}
}

func TestLocalFS_Exists(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	exists, _ := fs.Exists(ctx, "nonexistent.json")
	if exists {
		t.Error("expected false for nonexistent file")
	}

	fs.Write(ctx, "exists.json", []byte("{}"))
	exists, _ = fs.Exists(ctx, "exists.json")
	if !exists {
		t.Error("expected true for existing file")
	}
}

func TestLocalFS_List(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	fs.Write(ctx, "snapshots/2025/05/a.json", []byte("a"))
	fs.Write(ctx, "snapshots/2025/05/b.json", []byte("b"))
	fs.Write(ctx, "snapshots/2025/06/c.json", []byte("c"))

	paths, err := fs.List(ctx, "snapshots/2025/05")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if paths[0] != "snapshots/2025/05/a.json" {
		t.Errorf("expected slash-separated relative path, got %s", paths[0])
	}

	empty, err := fs.List(ctx, "snapshots/1999")
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty list for missing prefix, got %v, %v", empty, err)
	}
}

func TestLocalFS_Delete(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	fs.Write(ctx, "delete.json", []byte("{}"))
	if err := fs.Delete(ctx, "delete.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	exists, _ := fs.Exists(ctx, "delete.json")
	if exists {
		t.Error("file should be deleted")
	}
	if err := fs.Delete(ctx, "delete.json"); err != nil {
		t.Errorf("deleting a missing object should succeed, got %v", err)
	}
}
