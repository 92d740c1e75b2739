package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCreateMedia(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	input := CreateMediaInput{
		SlipID:  "slip-1",
		Kind:    MediaKindImage,
		FileKey: " slips/slip-1/photo.jpg ",
		Caption: "low tide",
	}

	media, err := CreateMedia(input, func() time.Time { return fixedTime }, func() (string, error) {
		return "media-1", nil
	})
	if err != nil {
		t.Fatalf("create media: %v", err)
	}

	if media.FileKey != "slips/slip-1/photo.jpg" {
		t.Fatalf("expected trimmed file key, got %q", media.FileKey)
	}
	if media.Kind != MediaKindImage {
		t.Fatalf("expected image kind, got %v", media.Kind)
	}
	if !media.CreatedAt.Equal(fixedTime) {
		t.Fatalf("expected created at to match fixed time")
	}
}

func TestMediaKindLabelRoundTrip(t *testing.T) {
	tests := []struct {
		kind  MediaKind
		label string
	}{
		{MediaKindImage, "image"},
		{MediaKindAudio, "audio"},
	}

	for _, tt := range tests {
		if got := MediaKindLabel(tt.kind); got != tt.label {
			t.Fatalf("expected label %q, got %q", tt.label, got)
		}
		if got := MediaKindFromLabel(tt.label); got != tt.kind {
			t.Fatalf("expected kind %v for label %q, got %v", tt.kind, tt.label, got)
		}
	}

	if got := MediaKindFromLabel("video"); got != MediaKindUnspecified {
		t.Fatalf("expected unspecified for unknown label, got %v", got)
	}
}

func TestNormalizeCreateMediaInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateMediaInput
		err   error
	}{
		{
			name:  "missing slip",
			input: CreateMediaInput{Kind: MediaKindImage, FileKey: "key"},
			err:   ErrEmptySlipID,
		},
		{
			name:  "missing kind",
			input: CreateMediaInput{SlipID: "slip-1", FileKey: "key"},
			err:   ErrInvalidMediaKind,
		},
		{
			name:  "missing file key",
			input: CreateMediaInput{SlipID: "slip-1", Kind: MediaKindAudio, FileKey: "  "},
			err:   ErrEmptyFileKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeCreateMediaInput(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}
