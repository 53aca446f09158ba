package blob

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func TestFileStoreMissingFileLoadsAsEmpty(t *testing.T) {
	f := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	data, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil data, got %q", data)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := NewFileStore(filepath.Join(t.TempDir(), "history.json"))

	want := []byte(`[{"id":"a"}]`)
	if err := f.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err := f.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Overwrite replaces the whole snapshot.
	want2 := []byte(`[]`)
	if err := f.Save(ctx, want2); err != nil {
		t.Fatal(err)
	}
	got, err = f.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want2) {
		t.Fatalf("after overwrite got %q, want %q", got, want2)
	}
}

func TestFileStoreCreatesParentDirs(t *testing.T) {
	ctx := context.Background()
	f := NewFileStore(filepath.Join(t.TempDir(), "nested", "dir", "history.json"))
	if err := f.Save(ctx, []byte("[]")); err != nil {
		t.Fatal(err)
	}
	data, err := f.Load(ctx)
	if err != nil || string(data) != "[]" {
		t.Fatalf("got %q, %v", data, err)
	}
}
