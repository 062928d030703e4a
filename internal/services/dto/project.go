package dto

import (
	"time"

	"taskhub_backend/internal/models"
)

// CreateProjectRequest - запрос создания проекта
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
}

// UpdateProjectRequest - запрос изменения проекта (частичное обновление)
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

// AddMemberRequest - запрос добавления участника в проект
type AddMemberRequest struct {
	UserID string             `json:"user_id" binding:"required"`
	Role   models.ProjectRole `json:"role" binding:"required,oneof=owner member"`
}

// ProjectResponse - данные проекта
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemberResponse - участник проекта с ролью
type MemberResponse struct {
	UserID string             `json:"user_id"`
	Role   models.ProjectRole `json:"role"`
}
