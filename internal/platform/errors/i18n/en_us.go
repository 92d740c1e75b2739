package i18n

import "golang.org/x/text/language"

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeContainerNotFound  = "CONTAINER_NOT_FOUND"
	CodeContainerNameEmpty = "CONTAINER_NAME_EMPTY"

	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeUserEmptySubjectID    = "USER_EMPTY_SUBJECT_ID"
	CodeUserEmptyDisplayName  = "USER_EMPTY_DISPLAY_NAME"
	CodeIdentityTokenInvalid  = "IDENTITY_TOKEN_INVALID"
	CodeIdentityTokenExpired  = "IDENTITY_TOKEN_EXPIRED"
	CodeIdentityTokenMismatch = "IDENTITY_TOKEN_MISMATCH"

	CodeMembershipNotFound = "MEMBERSHIP_NOT_FOUND"
	CodeMembershipExists   = "MEMBERSHIP_ALREADY_EXISTS"
	CodeRoleInvalid        = "ROLE_INVALID"

	CodePermissionDenied = "PERMISSION_DENIED"

	CodeInviteNotFound        = "INVITE_NOT_FOUND"
	CodeInviteInactive        = "INVITE_INACTIVE"
	CodeInviteExpired         = "INVITE_EXPIRED"
	CodeInviteExhausted       = "INVITE_EXHAUSTED"
	CodeInviteTTLInvalid      = "INVITE_TTL_INVALID"
	CodeInviteMaxUsesInvalid  = "INVITE_MAX_USES_INVALID"
	CodeInviteCodeUnavailable = "INVITE_CODE_UNAVAILABLE"

	CodeSlipNotFound      = "SLIP_NOT_FOUND"
	CodeSlipContentEmpty  = "SLIP_CONTENT_EMPTY"
	CodeSlipFilterInvalid = "SLIP_FILTER_INVALID"

	CodeCommentNotFound     = "COMMENT_NOT_FOUND"
	CodeCommentContentEmpty = "COMMENT_CONTENT_EMPTY"

	CodeMediaNotFound    = "MEDIA_NOT_FOUND"
	CodeMediaKindInvalid = "MEDIA_KIND_INVALID"
	CodeMediaFileMissing = "MEDIA_FILE_MISSING"

	CodeReactionNotFound  = "REACTION_NOT_FOUND"
	CodeReactionTypeEmpty = "REACTION_TYPE_EMPTY"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	tag:    language.AmericanEnglish,
	messages: map[Code]string{
		// Container errors
		CodeContainerNotFound:  "Container not found",
		CodeContainerNameEmpty: "Container name cannot be empty",

		// User and identity errors
		CodeUserNotFound:          "User not found",
		CodeUserEmptySubjectID:    "Identity subject is required",
		CodeUserEmptyDisplayName:  "Display name cannot be empty",
		CodeIdentityTokenInvalid:  "Could not validate credentials",
		CodeIdentityTokenExpired:  "Credentials have expired",
		CodeIdentityTokenMismatch: "Credentials do not match the expected {{.Field}}",

		// Membership errors
		CodeMembershipNotFound: "User is not a member of this container",
		CodeMembershipExists:   "User is already a member",
		CodeRoleInvalid:        "Invalid role: {{.Role}}",

		// Authorization errors
		CodePermissionDenied: "You are not allowed to {{.Action}} this {{.Resource}}",

		// Invite errors
		CodeInviteNotFound:        "Invalid invite code",
		CodeInviteInactive:        "This invite is no longer active",
		CodeInviteExpired:         "This invite has expired",
		CodeInviteExhausted:       "This invite has reached its maximum usage limit",
		CodeInviteTTLInvalid:      "Invite expiry hours must be non-negative",
		CodeInviteMaxUsesInvalid:  "Invite max uses must be at least 1",
		CodeInviteCodeUnavailable: "Could not allocate an invite code",

		// Slip errors
		CodeSlipNotFound:      "Slip not found",
		CodeSlipContentEmpty:  "Slip content cannot be empty",
		CodeSlipFilterInvalid: "Invalid slip filter: {{.Filter}}",

		// Comment errors
		CodeCommentNotFound:     "Comment not found",
		CodeCommentContentEmpty: "Comment content cannot be empty",

		// Media errors
		CodeMediaNotFound:    "Media not found",
		CodeMediaKindInvalid: "Invalid file kind: must be image or audio",
		CodeMediaFileMissing: "File not found in storage. Please upload first.",

		// Reaction errors
		CodeReactionNotFound:  "No reaction found to remove",
		CodeReactionTypeEmpty: "Reaction type cannot be empty",
	},
}
