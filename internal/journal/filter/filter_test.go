package filter

import (
	"reflect"
	"testing"
)

func TestParseSlipFilter_AuthorEquals(t *testing.T) {
	cond, err := ParseSlipFilter(`author_id = "user-1"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "author_user_id = ?" {
		t.Errorf("expected 'author_user_id = ?', got %q", cond.Clause)
	}
	if len(cond.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(cond.Params))
	}
	if cond.Params[0] != "user-1" {
		t.Errorf("expected 'user-1', got %v", cond.Params[0])
	}
}

func TestParseSlipFilter_Empty(t *testing.T) {
	cond, err := ParseSlipFilter(" ")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "" || cond.Params != nil {
		t.Fatalf("expected empty condition, got %+v", cond)
	}
}

func TestParseSlipFilter_AndOr(t *testing.T) {
	cond, err := ParseSlipFilter(`author_id = "user-1" AND title = "tide pool"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(author_user_id = ? AND title = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{"user-1", "tide pool"}) {
		t.Fatalf("Params = %v", cond.Params)
	}

	cond, err = ParseSlipFilter(`author_id = "user-1" OR author_id = "user-2"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(author_user_id = ? OR author_user_id = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
}

func TestParseSlipFilter_Timestamp(t *testing.T) {
	cond, err := ParseSlipFilter(`created_at > timestamp("2026-01-01T00:00:00Z")`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "created_at > ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if len(cond.Params) != 1 {
		t.Fatalf("Params len = %d", len(cond.Params))
	}
	millis, ok := cond.Params[0].(int64)
	if !ok {
		t.Fatalf("expected int64 millis param, got %T", cond.Params[0])
	}
	if millis != 1767225600000 {
		t.Fatalf("timestamp param = %d", millis)
	}
}

func TestParseSlipFilter_InvalidField(t *testing.T) {
	_, err := ParseSlipFilter(`unknown = "x"`)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseSlipFilter_InvalidTimestamp(t *testing.T) {
	_, err := ParseSlipFilter(`created_at = timestamp("not-a-time")`)
	if err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}
