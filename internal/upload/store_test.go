package upload_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toolroom/toolroom/internal/upload"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestStore_Save(t *testing.T) {
	store, err := upload.NewStore(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	url, err := store.Save(bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("failed to save upload: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("expected URL under /uploads/, got %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("expected .png extension, got %q", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	content, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if !bytes.Equal(content, pngBytes) {
		t.Error("stored file does not match the upload")
	}
}

func TestStore_Save_UniqueNames(t *testing.T) {
	store, err := upload.NewStore(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	first, err := store.Save(bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("failed to save upload: %v", err)
	}
	second, err := store.Save(bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("failed to save upload: %v", err)
	}

	if first == second {
		t.Errorf("expected unique names, got %q twice", first)
	}
}

func TestStore_Save_RejectsNonImage(t *testing.T) {
	store, err := upload.NewStore(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	_, err = store.Save(strings.NewReader("plain text, not an image"))
	if !errors.Is(err, upload.ErrNotAnImage) {
		t.Errorf("expected ErrNotAnImage, got %v", err)
	}
}

func TestStore_Save_RejectsOversized(t *testing.T) {
	store, err := upload.NewStore(t.TempDir(), 16)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, 64)...)
	_, err = store.Save(bytes.NewReader(big))
	if !errors.Is(err, upload.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
