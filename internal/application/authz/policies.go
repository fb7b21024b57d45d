package authz

// Action names
const (
	ActionWorkoutCreate   = "workout.create"
	ActionWorkoutList     = "workout.list"
	ActionWorkoutUpdate   = "workout.update"
	ActionWorkoutDelete   = "workout.delete"
	ActionProgramCreate   = "program.create"
	ActionProgramListMine = "program.list_mine"
	ActionProgramUpdate   = "program.update"
	ActionProgramDelete   = "program.delete"
	ActionProgramListAll  = "program.list_all"
	ActionProgramAssign   = "program.assign"
	ActionCVUpsert        = "cv.upsert"
	ActionCVGetMine       = "cv.get_mine"
	ActionCVListAll       = "cv.list_all"
	ActionCVGet           = "cv.get"
	ActionStatsUser       = "stats.user"
	ActionStatsTrainer    = "stats.trainer"
	ActionDashboard       = "dashboard"
	ActionAccountGet      = "account.get"
)

var (
	userOnly    = []string{RoleUser}
	trainerOnly = []string{RoleTrainer}
)

// Policies maps every guarded action to the roles allowed to run it.
// A nil Roles slice means any authenticated caller.
var Policies = map[string]Policy{
	ActionWorkoutCreate:   {Action: ActionWorkoutCreate, Roles: userOnly},
	ActionWorkoutList:     {Action: ActionWorkoutList, Roles: userOnly},
	ActionWorkoutUpdate:   {Action: ActionWorkoutUpdate, Roles: userOnly},
	ActionWorkoutDelete:   {Action: ActionWorkoutDelete, Roles: userOnly},
	ActionProgramCreate:   {Action: ActionProgramCreate, Roles: trainerOnly},
	ActionProgramListMine: {Action: ActionProgramListMine, Roles: trainerOnly},
	ActionProgramUpdate:   {Action: ActionProgramUpdate, Roles: trainerOnly},
	ActionProgramDelete:   {Action: ActionProgramDelete, Roles: trainerOnly},
	ActionProgramListAll:  {Action: ActionProgramListAll},
	ActionProgramAssign:   {Action: ActionProgramAssign, Roles: userOnly},
	ActionCVUpsert:        {Action: ActionCVUpsert, Roles: trainerOnly},
	ActionCVGetMine:       {Action: ActionCVGetMine, Roles: trainerOnly},
	ActionCVListAll:       {Action: ActionCVListAll},
	ActionCVGet:           {Action: ActionCVGet},
	ActionStatsUser:       {Action: ActionStatsUser, Roles: userOnly},
	ActionStatsTrainer:    {Action: ActionStatsTrainer, Roles: trainerOnly},
	ActionDashboard:       {Action: ActionDashboard},
	ActionAccountGet:      {Action: ActionAccountGet},
}

// For returns the policy registered for action.
// An unregistered action gets a policy no role satisfies.
func For(action string) Policy {
	if p, ok := Policies[action]; ok {
		return p
	}
	return Policy{Action: action, Roles: []string{"-"}}
}
