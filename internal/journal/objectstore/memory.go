package objectstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/domain"
)

// Memory is an in-process object store. It backs local development and
// tests; production deployments inject a client for the real storage
// service instead.
type Memory struct {
	// BaseURL prefixes issued URLs, e.g. "https://files.example.test".
	BaseURL string

	mu   sync.Mutex
	keys map[string]bool
}

var _ ObjectStore = (*Memory)(nil)

// NewMemory creates an empty in-process object store.
func NewMemory(baseURL string) *Memory {
	return &Memory{
		BaseURL: strings.TrimRight(baseURL, "/"),
		keys:    make(map[string]bool),
	}
}

// RequestUploadURL issues an upload slot and marks the key as stored. The
// real storage service only materializes the key once bytes arrive; here
// the upload is assumed to complete.
func (m *Memory) RequestUploadURL(ctx context.Context, kind domain.MediaKind, contentType string) (Upload, error) {
	if err := ctx.Err(); err != nil {
		return Upload{}, err
	}
	label := domain.MediaKindLabel(kind)
	if label == "" {
		return Upload{}, apperrors.New(apperrors.CodeMediaKindInvalid, "media kind must be image or audio")
	}

	id, err := domain.NewID()
	if err != nil {
		return Upload{}, fmt.Errorf("generate file key: %w", err)
	}
	key := label + "/" + id

	m.mu.Lock()
	m.keys[key] = true
	m.mu.Unlock()

	return Upload{
		URL: fmt.Sprintf("%s/upload/%s", m.BaseURL, key),
		Key: key,
	}, nil
}

// RequestDownloadURL issues a read URL for a stored key.
func (m *Memory) RequestDownloadURL(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	stored := m.keys[key]
	m.mu.Unlock()
	if !stored {
		return "", apperrors.New(apperrors.CodeMediaFileMissing, "file is not stored")
	}
	return fmt.Sprintf("%s/files/%s", m.BaseURL, key), nil
}

// Delete removes the key. Missing keys are ignored.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.keys, key)
	m.mu.Unlock()
	return nil
}

// Exists reports whether the key is stored.
func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	stored := m.keys[key]
	m.mu.Unlock()
	return stored, nil
}
