package permissions

import "github.com/google/uuid"

// Ability answers permission questions for one user acting under one role.
type Ability struct {
	grants []Grant
}

// For builds the ability of userID holding role. Unknown roles get no grants.
// No rule in the current table is conditioned on the user, so only role
// decides the result.
func For(_ uuid.UUID, role Role) *Ability {
	return &Ability{grants: grantsByRole[role]}
}

// Can reports whether action is allowed on subject. Tuples outside the
// subject schemas are always denied.
func (a *Ability) Can(action Action, subject Subject) bool {
	if subject == nil {
		return false
	}
	subjectType := subject.SubjectType()
	if ValidateCheck(action, subjectType) != nil {
		return false
	}
	for _, g := range a.grants {
		if g.matches(action, subjectType) {
			return true
		}
	}
	return false
}

func (a *Ability) Cannot(action Action, subject Subject) bool {
	return !a.Can(action, subject)
}
