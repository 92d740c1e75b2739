package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCreateSlipAllowsEmptyTitle(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	input := CreateSlipInput{
		ContainerID:  "container-1",
		AuthorUserID: "user-1",
		Content:      "  found a tide pool  ",
	}

	slip, err := CreateSlip(input, func() time.Time { return fixedTime }, func() (string, error) {
		return "slip-1", nil
	})
	if err != nil {
		t.Fatalf("create slip: %v", err)
	}

	if slip.Title != "" {
		t.Fatalf("expected empty title, got %q", slip.Title)
	}
	if slip.Content != "found a tide pool" {
		t.Fatalf("expected trimmed content, got %q", slip.Content)
	}
	if !slip.CreatedAt.Equal(fixedTime) || !slip.UpdatedAt.Equal(fixedTime) {
		t.Fatalf("expected timestamps to match fixed time")
	}
}

func TestNormalizeCreateSlipInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateSlipInput
		err   error
	}{
		{
			name:  "missing container",
			input: CreateSlipInput{AuthorUserID: "user-1", Content: "hello"},
			err:   ErrEmptyContainerID,
		},
		{
			name:  "missing author",
			input: CreateSlipInput{ContainerID: "container-1", Content: "hello"},
			err:   ErrEmptyUserID,
		},
		{
			name:  "blank content",
			input: CreateSlipInput{ContainerID: "container-1", AuthorUserID: "user-1", Content: "   "},
			err:   ErrEmptySlipContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeCreateSlipInput(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}
