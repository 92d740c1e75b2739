package service

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/domain"
)

func TestMediaUploadAttachDownload(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	owner := seedUser(t, svc, "owner")
	container := seedContainer(t, svc, owner.ID, "Family Journal")
	slip := seedSlip(t, svc, owner.ID, container.ID, "Photos", "Content.")

	upload, err := svc.RequestMediaUpload(ctx, owner.ID, slip.ID, domain.MediaKindImage, "image/png")
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	if !strings.HasPrefix(upload.Key, "image/") {
		t.Fatalf("expected image key prefix, got %q", upload.Key)
	}

	media, err := svc.AttachMedia(ctx, owner.ID, slip.ID, domain.MediaKindImage, upload.Key, "sunset over the lake")
	if err != nil {
		t.Fatalf("attach media: %v", err)
	}
	if media.Caption != "sunset over the lake" {
		t.Fatalf("unexpected caption %q", media.Caption)
	}

	url, err := svc.MediaDownloadURL(ctx, owner.ID, media.ID)
	if err != nil {
		t.Fatalf("download url: %v", err)
	}
	if !strings.Contains(url, upload.Key) {
		t.Fatalf("expected download url to carry the key, got %q", url)
	}
}

func TestAttachMediaRequiresStoredFile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	owner := seedUser(t, svc, "owner")
	container := seedContainer(t, svc, owner.ID, "Family Journal")
	slip := seedSlip(t, svc, owner.ID, container.ID, "Photos", "Content.")

	_, err := svc.AttachMedia(ctx, owner.ID, slip.ID, domain.MediaKindImage, "image/never-uploaded", "")
	assertCode(t, err, apperrors.CodeMediaFileMissing)
}

func TestMediaMemberGates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	owner := seedUser(t, svc, "owner")
	outsider := seedUser(t, svc, "outsider")
	container := seedContainer(t, svc, owner.ID, "Family Journal")
	slip := seedSlip(t, svc, owner.ID, container.ID, "Photos", "Content.")

	_, err := svc.RequestMediaUpload(ctx, outsider.ID, slip.ID, domain.MediaKindAudio, "audio/ogg")
	assertCode(t, err, apperrors.CodePermissionDenied)

	upload, err := svc.RequestMediaUpload(ctx, owner.ID, slip.ID, domain.MediaKindAudio, "audio/ogg")
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	media, err := svc.AttachMedia(ctx, owner.ID, slip.ID, domain.MediaKindAudio, upload.Key, "")
	if err != nil {
		t.Fatalf("attach media: %v", err)
	}

	_, err = svc.MediaDownloadURL(ctx, outsider.ID, media.ID)
	assertCode(t, err, apperrors.CodePermissionDenied)
}

func TestUpdateMediaCaptionSlipAuthorOnly(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	owner := seedUser(t, svc, "owner")
	author := seedUser(t, svc, "author")
	container := seedContainer(t, svc, owner.ID, "Family Journal")
	if _, err := svc.AddMember(ctx, owner.ID, container.ID, author.ID, domain.RoleMember); err != nil {
		t.Fatalf("add author: %v", err)
	}
	slip := seedSlip(t, svc, author.ID, container.ID, "Photos", "Content.")
	upload, err := svc.RequestMediaUpload(ctx, author.ID, slip.ID, domain.MediaKindImage, "image/jpeg")
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	media, err := svc.AttachMedia(ctx, author.ID, slip.ID, domain.MediaKindImage, upload.Key, "old caption")
	if err != nil {
		t.Fatalf("attach media: %v", err)
	}

	_, err = svc.UpdateMediaCaption(ctx, owner.ID, media.ID, "admin caption")
	assertCode(t, err, apperrors.CodePermissionDenied)

	updated, err := svc.UpdateMediaCaption(ctx, author.ID, media.ID, "new caption")
	if err != nil {
		t.Fatalf("author caption update: %v", err)
	}
	if updated.Caption != "new caption" {
		t.Fatalf("expected new caption, got %q", updated.Caption)
	}
}

func TestDeleteMediaRemovesFile(t *testing.T) {
	svc, _, objects := newTestService(t)
	ctx := context.Background()
	owner := seedUser(t, svc, "owner")
	author := seedUser(t, svc, "author")
	container := seedContainer(t, svc, owner.ID, "Family Journal")
	if _, err := svc.AddMember(ctx, owner.ID, container.ID, author.ID, domain.RoleMember); err != nil {
		t.Fatalf("add author: %v", err)
	}
	slip := seedSlip(t, svc, author.ID, container.ID, "Photos", "Content.")
	upload, err := svc.RequestMediaUpload(ctx, author.ID, slip.ID, domain.MediaKindImage, "image/png")
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	media, err := svc.AttachMedia(ctx, author.ID, slip.ID, domain.MediaKindImage, upload.Key, "")
	if err != nil {
		t.Fatalf("attach media: %v", err)
	}

	// The container admin can moderate the attachment away.
	if err := svc.DeleteMedia(ctx, owner.ID, media.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	exists, err := objects.Exists(ctx, upload.Key)
	if err != nil {
		t.Fatalf("check file: %v", err)
	}
	if exists {
		t.Fatalf("expected stored file to be removed")
	}
	err = svc.DeleteMedia(ctx, owner.ID, media.ID)
	assertCode(t, err, apperrors.CodeMediaNotFound)
}
