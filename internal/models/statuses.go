package models

type ProjectRole string
type TaskStatus string

const (
	// Owner может изменять проект, его участников и задачи
	ProjectRoleOwner ProjectRole = "owner"
	// Member имеет только чтение (текущее поведение)
	ProjectRoleMember ProjectRole = "member"

	TaskStatusToDo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// ValidTaskStatus проверяет валидность статуса задачи
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// ValidProjectRole проверяет валидность роли в проекте
func ValidProjectRole(r ProjectRole) bool {
	return r == ProjectRoleOwner || r == ProjectRoleMember
}
