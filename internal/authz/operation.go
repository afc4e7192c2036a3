package authz

// Operation identifies a protected operation family. Every handler that
// guards a resource maps to exactly one Operation before calling the engine.
type Operation string

const (
	OpClientCreate Operation = "client.create"
	OpClientRead   Operation = "client.read"
	OpClientList   Operation = "client.list"
	OpClientUpdate Operation = "client.update"
	OpClientDelete Operation = "client.delete"

	OpProjectCreate       Operation = "project.create"
	OpProjectRead         Operation = "project.read"
	OpProjectList         Operation = "project.list"
	OpProjectUpdate       Operation = "project.update"
	OpProjectUpdateStatus Operation = "project.update_status"
	OpProjectDelete       Operation = "project.delete"

	OpTaskCreate        Operation = "task.create"
	OpTaskRead          Operation = "task.read"
	OpTaskList          Operation = "task.list"
	OpTaskListByProject Operation = "task.list_by_project"
	OpTaskListByUser    Operation = "task.list_by_user"
	OpTaskUpdate        Operation = "task.update"
	OpTaskUpdateStatus  Operation = "task.update_status"
	OpTaskDelete        Operation = "task.delete"

	OpAssignmentCreate Operation = "assignment.create"
	OpAssignmentRemove Operation = "assignment.remove"
	OpAssignmentList   Operation = "assignment.list"

	OpUserList     Operation = "user.list"
	OpUserRegister Operation = "user.register"
	OpUserDelete   Operation = "user.delete"

	OpPaymentCreate        Operation = "payment.create"
	OpPaymentListByProject Operation = "payment.list_by_project"

	OpDashboardView Operation = "dashboard.view"
)

// Operations lists every operation the engine decides, for exhaustive tests.
var Operations = []Operation{
	OpClientCreate, OpClientRead, OpClientList, OpClientUpdate, OpClientDelete,
	OpProjectCreate, OpProjectRead, OpProjectList, OpProjectUpdate,
	OpProjectUpdateStatus, OpProjectDelete,
	OpTaskCreate, OpTaskRead, OpTaskList, OpTaskListByProject, OpTaskListByUser,
	OpTaskUpdate, OpTaskUpdateStatus, OpTaskDelete,
	OpAssignmentCreate, OpAssignmentRemove, OpAssignmentList,
	OpUserList, OpUserRegister, OpUserDelete,
	OpPaymentCreate, OpPaymentListByProject,
	OpDashboardView,
}
