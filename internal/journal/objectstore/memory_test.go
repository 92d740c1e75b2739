package objectstore

import (
	"context"
	"strings"
	"testing"

	"github.com/louisbranch/slipjar/internal/journal/domain"
)

func TestMemoryUploadDownloadRoundTrip(t *testing.T) {
	store := NewMemory("https://files.example.test/")
	ctx := context.Background()

	upload, err := store.RequestUploadURL(ctx, domain.MediaKindImage, "image/jpeg")
	if err != nil {
		t.Fatalf("request upload url: %v", err)
	}
	if !strings.HasPrefix(upload.Key, "image/") {
		t.Fatalf("expected key prefixed by kind, got %q", upload.Key)
	}
	if !strings.HasPrefix(upload.URL, "https://files.example.test/upload/") {
		t.Fatalf("unexpected upload url %q", upload.URL)
	}

	exists, err := store.Exists(ctx, upload.Key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected uploaded key to exist")
	}

	url, err := store.RequestDownloadURL(ctx, upload.Key)
	if err != nil {
		t.Fatalf("request download url: %v", err)
	}
	if url != "https://files.example.test/files/"+upload.Key {
		t.Fatalf("unexpected download url %q", url)
	}
}

func TestMemoryDownloadMissingKey(t *testing.T) {
	store := NewMemory("https://files.example.test")

	if _, err := store.RequestDownloadURL(context.Background(), "image/missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestMemoryDeleteIsIdempotent(t *testing.T) {
	store := NewMemory("https://files.example.test")
	ctx := context.Background()

	upload, err := store.RequestUploadURL(ctx, domain.MediaKindAudio, "audio/ogg")
	if err != nil {
		t.Fatalf("request upload url: %v", err)
	}

	if err := store.Delete(ctx, upload.Key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, upload.Key); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	exists, err := store.Exists(ctx, upload.Key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("expected deleted key to be gone")
	}
}

func TestMemoryRejectsUnknownKind(t *testing.T) {
	store := NewMemory("https://files.example.test")

	if _, err := store.RequestUploadURL(context.Background(), domain.MediaKindUnspecified, "text/plain"); err == nil {
		t.Fatal("expected error for unspecified kind")
	}
}
