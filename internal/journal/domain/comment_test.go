package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCreateComment(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	input := CreateCommentInput{
		SlipID:       "slip-1",
		AuthorUserID: "user-2",
		Content:      " same beach last year! ",
	}

	comment, err := CreateComment(input, func() time.Time { return fixedTime }, func() (string, error) {
		return "comment-1", nil
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if comment.Content != "same beach last year!" {
		t.Fatalf("expected trimmed content, got %q", comment.Content)
	}
	if !comment.CreatedAt.Equal(fixedTime) || !comment.UpdatedAt.Equal(fixedTime) {
		t.Fatalf("expected timestamps to match fixed time")
	}
}

func TestNormalizeCreateCommentInputRejectsBlankContent(t *testing.T) {
	input := CreateCommentInput{
		SlipID:       "slip-1",
		AuthorUserID: "user-2",
		Content:      "   ",
	}

	_, err := NormalizeCreateCommentInput(input)
	if !errors.Is(err, ErrEmptyCommentContent) {
		t.Fatalf("expected empty content error, got %v", err)
	}
}
