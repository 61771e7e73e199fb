package domain

// Actor is the authenticated identity every workflow operation receives.
// It is resolved from the bearer credential by the delivery layer and passed
// explicitly; usecases never read ambient request state.
type Actor struct {
	ID    uint
	Role  Role
	Level Level
}

func (a Actor) IsStudent() bool { return a.Role == RoleStudent }
func (a Actor) IsTeacher() bool { return a.Role == RoleTeacher }
func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }

// RequireRole is the role gate: the action is only permitted for the listed
// roles.
func RequireRole(actor Actor, allowed ...Role) error {
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	return ErrAuthorization("access denied: %s role is not authorized", actor.Role)
}

// RequireOwner is the ownership gate for authored content. There is no admin
// bypass here: moderation paths that allow admins say so explicitly.
func RequireOwner(actor Actor, createdBy uint) error {
	if actor.ID != createdBy {
		return ErrAuthorization("access denied: you are not the author")
	}
	return nil
}

// RequireEditable is the state gate: assignments and quizzes become immutable
// once approved, and rejection equally blocks further edits.
func RequireEditable(status ApprovalStatus) error {
	switch status {
	case StatusApproved:
		return ErrAuthorization("cannot modify: already approved by admin")
	case StatusRejected:
		return ErrAuthorization("cannot modify: already rejected by admin")
	}
	return nil
}

// ContentScope is the role-specific query predicate used for listings.
// Repositories translate it into a store filter; usecases never branch on
// role at each call site.
type ContentScope struct {
	Level        *Level          // student: entity level must match
	Status       *ApprovalStatus // student: approved only, where a lifecycle exists
	CreatedBy    *uint           // teacher: own entities regardless of status
	Unrestricted bool            // admin
}

// ScopeFor resolves the listing scope for the actor. hasLifecycle selects
// whether the approved-only constraint applies (assignments and quizzes have
// an approval lifecycle, lessons and announcements do not).
func ScopeFor(actor Actor, hasLifecycle bool) (ContentScope, error) {
	switch actor.Role {
	case RoleStudent:
		scope := ContentScope{Level: &actor.Level}
		if hasLifecycle {
			approved := StatusApproved
			scope.Status = &approved
		}
		return scope, nil
	case RoleTeacher:
		id := actor.ID
		return ContentScope{CreatedBy: &id}, nil
	case RoleAdmin:
		return ContentScope{Unrestricted: true}, nil
	}
	return ContentScope{}, ErrAuthorization("access denied: %s role is not authorized", actor.Role)
}
