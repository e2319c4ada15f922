// Package policy centralizes the role/ownership authorization rules so the
// same predicates gate both route registration and object-level mutations.
package policy

import "reviewhub/internal/api/models"

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Resource is the target of an object-level check. Collection-level checks
// pass a nil resource.
type Resource interface {
	Owner() string
}

// Policy decides whether subject may perform action on resource. A nil
// subject is an anonymous request.
type Policy interface {
	Allows(subject *models.User, action Action, resource Resource) bool
}

// Content governs reviews and comments: anyone reads, any authenticated user
// creates, only the author, a moderator or an admin mutates.
type Content struct{}

func (Content) Allows(subject *models.User, action Action, resource Resource) bool {
	switch action {
	case ActionRead:
		return true
	case ActionCreate:
		return subject != nil
	default:
		if subject == nil {
			return false
		}
		if subject.IsModerator() || subject.IsAdmin() {
			return true
		}
		return resource != nil && resource.Owner() == subject.ID
	}
}

// Catalog governs categories, genres and titles: anyone reads, only admins
// write. Moderators get nothing extra here.
type Catalog struct{}

func (Catalog) Allows(subject *models.User, action Action, _ Resource) bool {
	if action == ActionRead {
		return true
	}
	return subject != nil && subject.IsAdmin()
}

// UserAdmin governs the /users resource: admins only, whatever the action.
type UserAdmin struct{}

func (UserAdmin) Allows(subject *models.User, _ Action, _ Resource) bool {
	return subject != nil && subject.IsAdmin()
}
