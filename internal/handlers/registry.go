package handlers

// AppHandlers - контейнер готовых хендлеров приложения
type AppHandlers struct {
	AuthHandler    *AuthHandler
	ProjectHandler *ProjectHandler
	TaskHandler    *TaskHandler
}
