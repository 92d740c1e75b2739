package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Container errors
	CodeContainerNotFound  Code = "CONTAINER_NOT_FOUND"
	CodeContainerNameEmpty Code = "CONTAINER_NAME_EMPTY"

	// User errors
	CodeUserNotFound          Code = "USER_NOT_FOUND"
	CodeUserEmptySubjectID    Code = "USER_EMPTY_SUBJECT_ID"
	CodeUserEmptyDisplayName  Code = "USER_EMPTY_DISPLAY_NAME"
	CodeIdentityTokenInvalid  Code = "IDENTITY_TOKEN_INVALID"
	CodeIdentityTokenExpired  Code = "IDENTITY_TOKEN_EXPIRED"
	CodeIdentityTokenMismatch Code = "IDENTITY_TOKEN_MISMATCH"

	// Membership errors
	CodeMembershipNotFound Code = "MEMBERSHIP_NOT_FOUND"
	CodeMembershipExists   Code = "MEMBERSHIP_ALREADY_EXISTS"
	CodeRoleInvalid        Code = "ROLE_INVALID"

	// Authorization errors
	CodePermissionDenied Code = "PERMISSION_DENIED"

	// Invite errors
	CodeInviteNotFound        Code = "INVITE_NOT_FOUND"
	CodeInviteInactive        Code = "INVITE_INACTIVE"
	CodeInviteExpired         Code = "INVITE_EXPIRED"
	CodeInviteExhausted       Code = "INVITE_EXHAUSTED"
	CodeInviteTTLInvalid      Code = "INVITE_TTL_INVALID"
	CodeInviteMaxUsesInvalid  Code = "INVITE_MAX_USES_INVALID"
	CodeInviteCodeUnavailable Code = "INVITE_CODE_UNAVAILABLE"

	// Slip errors
	CodeSlipNotFound      Code = "SLIP_NOT_FOUND"
	CodeSlipContentEmpty  Code = "SLIP_CONTENT_EMPTY"
	CodeSlipFilterInvalid Code = "SLIP_FILTER_INVALID"

	// Comment errors
	CodeCommentNotFound     Code = "COMMENT_NOT_FOUND"
	CodeCommentContentEmpty Code = "COMMENT_CONTENT_EMPTY"

	// Media errors
	CodeMediaNotFound    Code = "MEDIA_NOT_FOUND"
	CodeMediaKindInvalid Code = "MEDIA_KIND_INVALID"
	CodeMediaFileMissing Code = "MEDIA_FILE_MISSING"

	// Reaction errors
	CodeReactionNotFound  Code = "REACTION_NOT_FOUND"
	CodeReactionTypeEmpty Code = "REACTION_TYPE_EMPTY"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeContainerNameEmpty,
		CodeUserEmptySubjectID,
		CodeUserEmptyDisplayName,
		CodeRoleInvalid,
		CodeInviteTTLInvalid,
		CodeInviteMaxUsesInvalid,
		CodeSlipContentEmpty,
		CodeSlipFilterInvalid,
		CodeCommentContentEmpty,
		CodeMediaKindInvalid,
		CodeMediaFileMissing,
		CodeReactionTypeEmpty:
		return codes.InvalidArgument

	// NotFound - resource absent
	case CodeContainerNotFound,
		CodeUserNotFound,
		CodeMembershipNotFound,
		CodeInviteNotFound,
		CodeSlipNotFound,
		CodeCommentNotFound,
		CodeMediaNotFound,
		CodeReactionNotFound:
		return codes.NotFound

	// PermissionDenied - authenticated but not permitted
	case CodePermissionDenied:
		return codes.PermissionDenied

	// Unauthenticated - identity token failures
	case CodeIdentityTokenInvalid,
		CodeIdentityTokenExpired,
		CodeIdentityTokenMismatch:
		return codes.Unauthenticated

	// AlreadyExists - duplicate rows
	case CodeMembershipExists:
		return codes.AlreadyExists

	// FailedPrecondition - state doesn't allow operation
	case CodeInviteInactive,
		CodeInviteExpired,
		CodeInviteExhausted:
		return codes.FailedPrecondition

	// ResourceExhausted - could not allocate a unique code
	case CodeInviteCodeUnavailable:
		return codes.ResourceExhausted

	default:
		return codes.Internal
	}
}
