// Package authz decides whether an actor may perform an action on a
// resource. Every mutation in the service layer consults this table after
// resolving the resource; the table itself never touches storage.
package authz

import "github.com/louisbranch/slipjar/internal/journal/domain"

// Resource identifies the kind of entity an action targets.
type Resource int

const (
	// ResourceUnspecified represents an invalid resource value.
	ResourceUnspecified Resource = iota
	// ResourceContainer targets a container.
	ResourceContainer
	// ResourceSlip targets a slip.
	ResourceSlip
	// ResourceComment targets a comment.
	ResourceComment
	// ResourceMedia targets a media attachment.
	ResourceMedia
	// ResourceInvite targets an invite.
	ResourceInvite
)

// Action identifies what the actor wants to do with the resource.
type Action int

const (
	// ActionUnspecified represents an invalid action value.
	ActionUnspecified Action = iota
	// ActionView reads the resource.
	ActionView
	// ActionCreate creates a resource of this kind.
	ActionCreate
	// ActionUpdate modifies the resource.
	ActionUpdate
	// ActionDelete removes the resource.
	ActionDelete
	// ActionList enumerates resources of this kind.
	ActionList
	// ActionAddMember adds another user to a container.
	ActionAddMember
	// ActionRemoveMember removes a user from a container.
	ActionRemoveMember
	// ActionDeactivate turns an invite inactive.
	ActionDeactivate
)

// Actor captures the caller's relation to the resource under check. The
// service layer resolves these facts from storage before asking for a
// decision; a zero Actor is a non-member outsider.
type Actor struct {
	// Role is the actor's membership role in the resource's container,
	// or RoleUnspecified when the actor is not a member.
	Role domain.Role
	// Owner reports whether the actor owns the container.
	Owner bool
	// Author reports whether the actor authored the slip or comment. For
	// media this means authoring the owning slip.
	Author bool
	// InviteCreator reports whether the actor created the invite.
	InviteCreator bool
	// Self reports whether the action targets the actor's own membership.
	Self bool
}

func (a Actor) member() bool {
	return a.Role == domain.RoleAdmin || a.Role == domain.RoleMember
}

func (a Actor) admin() bool {
	return a.Role == domain.RoleAdmin
}

// Can reports whether the actor may perform the action on the resource.
// Unknown resource or action combinations are denied.
func Can(actor Actor, resource Resource, action Action) bool {
	switch resource {
	case ResourceContainer:
		return canContainer(actor, action)
	case ResourceSlip, ResourceComment, ResourceMedia:
		return canAuthored(actor, action)
	case ResourceInvite:
		return canInvite(actor, action)
	default:
		return false
	}
}

func canContainer(actor Actor, action Action) bool {
	switch action {
	case ActionView:
		return actor.member()
	case ActionUpdate:
		return actor.admin()
	case ActionDelete:
		return actor.Owner
	case ActionAddMember:
		return actor.admin()
	case ActionRemoveMember:
		// Self-leave never requires a role check.
		if actor.Self {
			return true
		}
		return actor.admin()
	default:
		return false
	}
}

// canAuthored covers slips, comments, and media, which share the same
// shape: members read and create, authors edit, authors or admins delete.
func canAuthored(actor Actor, action Action) bool {
	switch action {
	case ActionView, ActionCreate, ActionList:
		return actor.member()
	case ActionUpdate:
		return actor.Author
	case ActionDelete:
		return actor.Author || actor.admin()
	default:
		return false
	}
}

func canInvite(actor Actor, action Action) bool {
	switch action {
	case ActionCreate, ActionList:
		return actor.admin()
	case ActionDeactivate:
		return actor.admin() || actor.InviteCreator
	default:
		return false
	}
}
