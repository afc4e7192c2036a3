// Package authz decides whether an actor may perform an operation on a
// project-management resource, and how list results must be narrowed.
//
// The rules are a total function over (Role, Operation): every role and
// operation pair resolves to an explicit Allow, Deny, or scope — there is no
// default-allow path. Visibility is always derived from the project
// assignment relation via the injected MembershipIndex, never from state
// cached on the resource itself.
package authz

// MembershipIndex answers the assignment-relation questions the engine
// needs. It is implemented by the assignment service over the store.
type MembershipIndex interface {
	// IsAssigned reports whether the user holds an assignment to the project.
	IsAssigned(userID, projectID uint) (bool, error)
	// SharesProject reports whether two users hold an assignment to at
	// least one common project. Implementations must resolve this as a
	// single relational query, not two membership fetches.
	SharesProject(userA, userB uint) (bool, error)
}

// Actor is the authenticated identity making a request.
type Actor struct {
	UserID uint
	Role   Role
}

// Resource carries the target identifiers a decision may depend on. Fields
// irrelevant to the operation are left zero. Existence of the referenced
// entities must be checked by the caller before deciding; the engine only
// answers the permission question.
type Resource struct {
	ProjectID      uint  // target project; for task operations, the task's project
	TaskAssigneeID *uint // the task's current assignee, if any
	TargetUserID   uint  // the user a listing targets (tasks-by-user, user delete)
}

// Engine evaluates the role/operation rule table.
type Engine struct {
	idx MembershipIndex
}

// NewEngine returns an Engine backed by the given membership index.
func NewEngine(idx MembershipIndex) *Engine {
	return &Engine{idx: idx}
}

const (
	reasonNotAssigned    = "access forbidden: you are not assigned to this project"
	reasonNotYourTask    = "access forbidden: you are not assigned to this task"
	reasonOnlyOwnTasks   = "access forbidden: you can only update tasks assigned to you"
	reasonAdminOnly      = "access forbidden: admin access required"
	reasonManagerOnly    = "access forbidden: manager access required"
	reasonNoSharedWork   = "access forbidden: no shared project with this user"
	reasonOnlyOwnListing = "access forbidden: you can only view your own tasks"
	reasonUnknownRole    = "access forbidden"
)

// Decide evaluates one operation for one actor. An invalid role or an
// operation the table does not know is denied. The returned error is only
// non-nil when the membership index itself fails.
func (e *Engine) Decide(actor Actor, op Operation, res Resource) (Decision, error) {
	if !actor.Role.Valid() {
		return deny(reasonUnknownRole), nil
	}

	switch op {
	// Admin and ProjectManager may create and manage reference data;
	// TeamMember never mutates anything beyond its own task statuses.
	case OpClientCreate, OpClientRead, OpClientList, OpClientUpdate,
		OpProjectCreate, OpProjectUpdate,
		OpTaskCreate, OpTaskUpdate,
		OpAssignmentCreate,
		OpUserList,
		OpPaymentCreate:
		if actor.Role == RoleAdmin || actor.Role == RoleProjectManager {
			return allow(), nil
		}
		return deny(reasonManagerOnly), nil

	// Deletes and user administration are Admin-only.
	case OpClientDelete, OpProjectDelete, OpTaskDelete,
		OpAssignmentRemove, OpUserRegister, OpUserDelete:
		if actor.Role == RoleAdmin {
			return allow(), nil
		}
		return deny(reasonAdminOnly), nil

	case OpProjectRead, OpProjectUpdateStatus, OpTaskListByProject,
		OpPaymentListByProject:
		if actor.Role == RoleAdmin {
			return allow(), nil
		}
		return e.requireAssigned(actor.UserID, res.ProjectID)

	case OpProjectList:
		if actor.Role == RoleAdmin {
			return allowProjects(ProjectScopeAll), nil
		}
		return allowProjects(ProjectScopeAssigned), nil

	case OpTaskList:
		switch actor.Role {
		case RoleAdmin:
			return allowTasks(TaskScopeAll), nil
		case RoleProjectManager:
			return allowTasks(TaskScopeAssignedProjects), nil
		default:
			return allowTasks(TaskScopeOwn), nil
		}

	case OpTaskRead:
		switch actor.Role {
		case RoleAdmin:
			return allow(), nil
		case RoleProjectManager:
			return e.requireAssigned(actor.UserID, res.ProjectID)
		default:
			if res.TaskAssigneeID != nil && *res.TaskAssigneeID == actor.UserID {
				return allow(), nil
			}
			return deny(reasonNotYourTask), nil
		}

	case OpTaskUpdateStatus:
		switch actor.Role {
		case RoleAdmin:
			return allow(), nil
		case RoleProjectManager:
			return e.requireAssigned(actor.UserID, res.ProjectID)
		default:
			if res.TaskAssigneeID != nil && *res.TaskAssigneeID == actor.UserID {
				return allow(), nil
			}
			return deny(reasonOnlyOwnTasks), nil
		}

	case OpTaskListByUser:
		switch actor.Role {
		case RoleAdmin:
			return allow(), nil
		case RoleProjectManager:
			shared, err := e.idx.SharesProject(actor.UserID, res.TargetUserID)
			if err != nil {
				return deny(reasonNoSharedWork), err
			}
			if shared {
				return allow(), nil
			}
			return deny(reasonNoSharedWork), nil
		default:
			if actor.UserID == res.TargetUserID {
				return allow(), nil
			}
			return deny(reasonOnlyOwnListing), nil
		}

	// Assignment listings and the dashboard are visible to any
	// authenticated user; the services scope the data they return.
	case OpAssignmentList, OpDashboardView:
		return allow(), nil
	}

	return deny(reasonUnknownRole), nil
}

func (e *Engine) requireAssigned(userID, projectID uint) (Decision, error) {
	ok, err := e.idx.IsAssigned(userID, projectID)
	if err != nil {
		return deny(reasonNotAssigned), err
	}
	if !ok {
		return deny(reasonNotAssigned), nil
	}
	return allow(), nil
}
