package services

// ServiceContainer - контейнер всех сервисов приложения
type ServiceContainer struct {
	AuthService          AuthService
	TokenService         TokenService
	AuthorizationService ProjectAuthorizationService
	ProjectService       *ProjectService
	TaskService          *TaskService
}
