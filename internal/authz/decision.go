package authz

// Effect is the outcome of a decision. The zero value is Deny so that a
// forgotten branch can never grant access.
type Effect int

const (
	EffectDeny Effect = iota
	EffectAllow
)

// ProjectScope narrows a project listing for the actor.
type ProjectScope int

const (
	ProjectScopeNone ProjectScope = iota
	ProjectScopeAll
	ProjectScopeAssigned // projects the actor holds an assignment to
)

// TaskScope narrows a task listing for the actor.
type TaskScope int

const (
	TaskScopeNone TaskScope = iota
	TaskScopeAll
	TaskScopeAssignedProjects // tasks whose project the actor is assigned to
	TaskScopeOwn              // tasks assigned to the actor
)

// Decision is the engine's answer for one (actor, operation, resource)
// triple. For list operations an Allow carries the scope the caller must
// apply; for everything else the scope fields are zero.
type Decision struct {
	Effect   Effect
	Reason   string // set on Deny
	Projects ProjectScope
	Tasks    TaskScope
}

// Allowed reports whether the operation may proceed.
func (d Decision) Allowed() bool { return d.Effect == EffectAllow }

func allow() Decision { return Decision{Effect: EffectAllow} }

func allowProjects(s ProjectScope) Decision {
	return Decision{Effect: EffectAllow, Projects: s}
}

func allowTasks(s TaskScope) Decision {
	return Decision{Effect: EffectAllow, Tasks: s}
}

func deny(reason string) Decision {
	return Decision{Effect: EffectDeny, Reason: reason}
}
