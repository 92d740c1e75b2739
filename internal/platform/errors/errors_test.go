package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	base := New(CodeInviteExpired, "invite expired")
	wrapped := fmt.Errorf("join by code: %w", base)

	if !stderrors.Is(wrapped, New(CodeInviteExpired, "different message")) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(wrapped, New(CodeInviteInactive, "invite expired")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "persist invite", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "persist invite" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeSlipNotFound, "slip not found"))
	if got := GetCode(err); got != CodeSlipNotFound {
		t.Fatalf("code = %q, want %q", got, CodeSlipNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeContainerNotFound, codes.NotFound},
		{CodeSlipNotFound, codes.NotFound},
		{CodePermissionDenied, codes.PermissionDenied},
		{CodeMembershipExists, codes.AlreadyExists},
		{CodeInviteExpired, codes.FailedPrecondition},
		{CodeInviteExhausted, codes.FailedPrecondition},
		{CodeRoleInvalid, codes.InvalidArgument},
		{CodeMediaKindInvalid, codes.InvalidArgument},
		{CodeIdentityTokenInvalid, codes.Unauthenticated},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("%s: grpc code = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestHandleErrorDomainError(t *testing.T) {
	err := WithMetadata(CodePermissionDenied, "actor is not an admin", map[string]string{
		"Action":   "update",
		"Resource": "container",
	})

	st, ok := status.FromError(HandleError(err, ""))
	if !ok {
		t.Fatal("expected a gRPC status")
	}
	if st.Code() != codes.PermissionDenied {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.PermissionDenied)
	}
	if st.Message() != "actor is not an admin" {
		t.Fatalf("status message = %q", st.Message())
	}
	if len(st.Details()) == 0 {
		t.Fatal("expected errdetails on status")
	}
}

func TestHandleErrorUnknownError(t *testing.T) {
	st, ok := status.FromError(HandleError(stderrors.New("boom"), "en-US"))
	if !ok {
		t.Fatal("expected a gRPC status")
	}
	if st.Code() != codes.Internal {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.Internal)
	}
}

func TestHandleErrorNil(t *testing.T) {
	if HandleError(nil, "en-US") != nil {
		t.Fatal("expected nil for nil error")
	}
}
