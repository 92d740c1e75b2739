package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"
)

// MediaKind describes the kind of file attached to a slip.
type MediaKind int

const (
	// MediaKindUnspecified represents an invalid media kind value.
	MediaKindUnspecified MediaKind = iota
	// MediaKindImage indicates an image attachment.
	MediaKindImage
	// MediaKindAudio indicates an audio attachment.
	MediaKindAudio
)

var (
	// ErrInvalidMediaKind indicates a missing or unknown media kind.
	ErrInvalidMediaKind = apperrors.New(apperrors.CodeMediaKindInvalid, "media kind must be image or audio")
	// ErrEmptyFileKey indicates a missing object storage key.
	ErrEmptyFileKey = apperrors.New(apperrors.CodeMediaFileMissing, "file key is required")
)

// MediaKindLabel returns the string label for a media kind.
func MediaKindLabel(kind MediaKind) string {
	switch kind {
	case MediaKindImage:
		return "image"
	case MediaKindAudio:
		return "audio"
	default:
		return ""
	}
}

// MediaKindFromLabel converts a media kind label to a MediaKind value.
func MediaKindFromLabel(label string) MediaKind {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "image":
		return MediaKindImage
	case "audio":
		return MediaKindAudio
	default:
		return MediaKindUnspecified
	}
}

// Media represents a file attachment on a slip. The file bytes live in the
// external object store; only the storage key is tracked here.
type Media struct {
	ID        string
	SlipID    string
	Kind      MediaKind
	FileKey   string
	Caption   string
	CreatedAt time.Time
}

// CreateMediaInput describes the metadata needed to register media.
type CreateMediaInput struct {
	SlipID  string
	Kind    MediaKind
	FileKey string
	Caption string
}

// CreateMedia creates a media record with a generated ID and timestamp.
func CreateMedia(input CreateMediaInput, now func() time.Time, idGenerator func() (string, error)) (Media, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = NewID
	}

	normalized, err := NormalizeCreateMediaInput(input)
	if err != nil {
		return Media{}, err
	}

	mediaID, err := idGenerator()
	if err != nil {
		return Media{}, fmt.Errorf("generate media id: %w", err)
	}

	return Media{
		ID:        mediaID,
		SlipID:    normalized.SlipID,
		Kind:      normalized.Kind,
		FileKey:   normalized.FileKey,
		Caption:   normalized.Caption,
		CreatedAt: now().UTC(),
	}, nil
}

// NormalizeCreateMediaInput trims and validates media input metadata.
func NormalizeCreateMediaInput(input CreateMediaInput) (CreateMediaInput, error) {
	input.SlipID = strings.TrimSpace(input.SlipID)
	if input.SlipID == "" {
		return CreateMediaInput{}, ErrEmptySlipID
	}
	if input.Kind != MediaKindImage && input.Kind != MediaKindAudio {
		return CreateMediaInput{}, ErrInvalidMediaKind
	}
	input.FileKey = strings.TrimSpace(input.FileKey)
	if input.FileKey == "" {
		return CreateMediaInput{}, ErrEmptyFileKey
	}
	input.Caption = strings.TrimSpace(input.Caption)
	return input, nil
}
