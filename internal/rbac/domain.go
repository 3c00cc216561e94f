package rbac

import "github.com/solvaders/clubhub/internal/shared"

// Action is a protected operation evaluated by the policy.
type Action string

const (
	ActionTeamCreate Action = "team.create"
	ActionTeamUpdate Action = "team.update"
	ActionTeamDelete Action = "team.delete"

	ActionMemberList   Action = "member.list"
	ActionMemberAdd    Action = "member.add"
	ActionMemberUpdate Action = "member.update"
	ActionMemberRemove Action = "member.remove"

	ActionMatchCreate Action = "match.create"
	ActionMatchUpdate Action = "match.update"
	ActionMatchDelete Action = "match.delete"

	ActionTrainingCreate     Action = "training.create"
	ActionTrainingUpdate     Action = "training.update"
	ActionTrainingDelete     Action = "training.delete"
	ActionTrainingAttendance Action = "training.attendance"

	ActionUserList   Action = "user.list"
	ActionUserManage Action = "user.manage"
)

// globalAllow is the fixed allow-list per action, keyed on the global
// account role. The table is the single source of truth; handlers never
// compare roles themselves.
var globalAllow = map[Action][]shared.Role{
	ActionTeamCreate: {shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionTeamUpdate: {shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionTeamDelete: {shared.RoleAdmin, shared.RoleSuperAdmin},

	ActionMemberList:   {shared.RoleGuest, shared.RolePlayer, shared.RoleCoach, shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionMemberAdd:    {shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionMemberUpdate: {shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionMemberRemove: {shared.RoleAdmin, shared.RoleSuperAdmin},

	ActionMatchCreate: {shared.RoleCoach, shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionMatchUpdate: {shared.RoleCoach, shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionMatchDelete: {shared.RoleAdmin, shared.RoleSuperAdmin},

	ActionTrainingCreate:     {shared.RoleCoach, shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionTrainingUpdate:     {shared.RoleCoach, shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionTrainingDelete:     {shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionTrainingAttendance: {shared.RoleCoach, shared.RoleAdmin, shared.RoleSuperAdmin},

	ActionUserList:   {shared.RoleAdmin, shared.RoleSuperAdmin},
	ActionUserManage: {shared.RoleAdmin, shared.RoleSuperAdmin},
}

// teamScoped marks actions where a team-scoped coach membership grants
// access even without a qualifying global role.
var teamScoped = map[Action]bool{
	ActionMemberAdd:    true,
	ActionMemberUpdate: true,
	ActionMemberRemove: true,
}

func roleAllowed(allowed []shared.Role, role shared.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
