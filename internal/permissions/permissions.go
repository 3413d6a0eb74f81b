package permissions

// Grant allows Action on Subject. ActionManage matches every action and
// SubjectAll matches every subject.
type Grant struct {
	Action  Action
	Subject SubjectType
}

func (g Grant) matches(action Action, subject SubjectType) bool {
	actionOK := g.Action == ActionManage || g.Action == action
	subjectOK := g.Subject == SubjectAll || g.Subject == subject
	return actionOK && subjectOK
}

var grantsByRole = map[Role][]Grant{
	RoleAdmin: {
		{ActionManage, SubjectAll},
	},
	RoleMember: {
		{ActionGet, SubjectUser},
		{ActionManage, SubjectProject},
	},
	RoleBilling: {},
}

func init() {
	for role, grants := range grantsByRole {
		for _, g := range grants {
			if err := ValidateCheck(g.Action, g.Subject); err != nil {
				panic("permissions: role " + string(role) + ": " + err.Error())
			}
		}
	}
}

// Grants returns a copy of the grants held by role.
func Grants(role Role) []Grant {
	grants := grantsByRole[role]
	out := make([]Grant, len(grants))
	copy(out, grants)
	return out
}
