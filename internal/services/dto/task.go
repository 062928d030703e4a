package dto

import (
	"time"

	"taskhub_backend/internal/models"
)

// CreateTaskRequest - запрос создания задачи
type CreateTaskRequest struct {
	Title          string  `json:"title" binding:"required,min=1,max=200"`
	Description    string  `json:"description"`
	AssignedUserID *string `json:"assigned_user_id"`
}

// UpdateTaskRequest - запрос изменения задачи (частичное обновление)
type UpdateTaskRequest struct {
	Title          *string            `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string            `json:"description"`
	Status         *models.TaskStatus `json:"status" validate:"omitempty,is-task-status"`
	AssignedUserID *string            `json:"assigned_user_id"`
}

// TaskResponse - данные задачи
type TaskResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Status         models.TaskStatus `json:"status"`
	ProjectID      string            `json:"project_id"`
	AssignedUserID *string           `json:"assigned_user_id,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
