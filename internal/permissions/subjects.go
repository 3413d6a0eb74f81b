package permissions

import (
	"errors"
	"fmt"
)

// Action is a verb an ability check is made for.
type Action string

const (
	ActionManage            Action = "manage"
	ActionGet               Action = "get"
	ActionCreate            Action = "create"
	ActionUpdate            Action = "update"
	ActionDelete            Action = "delete"
	ActionTransferOwnership Action = "transfer_ownership"
	ActionExport            Action = "export"
)

// SubjectType names a kind of resource permissions are granted on.
type SubjectType string

const (
	SubjectUser         SubjectType = "User"
	SubjectProject      SubjectType = "Project"
	SubjectOrganization SubjectType = "Organization"
	SubjectInvite       SubjectType = "Invite"
	SubjectBilling      SubjectType = "Billing"
	SubjectAll          SubjectType = "all"
)

// Subject is anything an ability can be checked against. Models implement it
// so a loaded record can be passed in place of its type name.
type Subject interface {
	SubjectType() SubjectType
}

func (t SubjectType) SubjectType() SubjectType {
	return t
}

var ErrInvalidCheck = errors.New("invalid permission check")

// schemas declares the actions each subject type accepts.
var schemas = map[SubjectType][]Action{
	SubjectProject:      {ActionManage, ActionGet, ActionCreate, ActionUpdate, ActionDelete},
	SubjectUser:         {ActionManage, ActionGet, ActionUpdate, ActionDelete},
	SubjectOrganization: {ActionManage, ActionUpdate, ActionDelete, ActionTransferOwnership},
	SubjectInvite:       {ActionManage, ActionGet, ActionCreate, ActionDelete},
	SubjectBilling:      {ActionManage, ActionGet, ActionExport},
	SubjectAll:          {ActionManage},
}

// ValidateCheck reports whether (action, subject) is a tuple declared by the
// subject schemas.
func ValidateCheck(action Action, subject SubjectType) error {
	actions, ok := schemas[subject]
	if !ok {
		return fmt.Errorf("%w: unknown subject %q", ErrInvalidCheck, subject)
	}
	for _, a := range actions {
		if a == action {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not an action of %s", ErrInvalidCheck, action, subject)
}

// Actions returns the actions declared for a subject type.
func Actions(subject SubjectType) []Action {
	actions := schemas[subject]
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

// SubjectTypes returns every concrete subject type, excluding the "all" wildcard.
func SubjectTypes() []SubjectType {
	return []SubjectType{SubjectUser, SubjectProject, SubjectOrganization, SubjectInvite, SubjectBilling}
}
