package services

import (
	"taskhub_backend/internal/models"
	"taskhub_backend/internal/repositories"
	"taskhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AuthorizationResult - итог проверки владельца.
// При отказе сообщение всегда одно и то же: оно не раскрывает
// ни существование проекта, ни наличие какой-либо роли у пользователя.
type AuthorizationResult struct {
	IsAuthorized bool   `json:"is_authorized"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ProjectAuthorizationService отвечает на вопрос "может ли пользователь U
// выполнять owner-операции над проектом P". Чистое чтение без побочных
// эффектов, безопасно вызывать несколько раз за запрос.
type ProjectAuthorizationService interface {
	// GetRole возвращает роль пользователя в проекте.
	// ok=false ("нет роли") - нормальный исход, а не ошибка.
	GetRole(db *gorm.DB, projectID, userID string) (models.ProjectRole, bool, error)

	// IsOwner истинен только для роли owner. Member, отсутствие роли
	// и несуществующий проект дают false, а не ошибку.
	IsOwner(db *gorm.DB, projectID, userID string) (bool, error)

	// ValidateOwner оборачивает IsOwner в результат с фиксированным сообщением
	ValidateOwner(db *gorm.DB, projectID, userID string) (AuthorizationResult, error)
}

type ProjectAuthorizationServiceImpl struct {
	projectRepo repositories.ProjectRepository
}

func NewProjectAuthorizationService(projectRepo repositories.ProjectRepository) ProjectAuthorizationService {
	return &ProjectAuthorizationServiceImpl{projectRepo: projectRepo}
}

func (s *ProjectAuthorizationServiceImpl) GetRole(db *gorm.DB, projectID, userID string) (models.ProjectRole, bool, error) {
	return s.projectRepo.FindRole(db, projectID, userID)
}

func (s *ProjectAuthorizationServiceImpl) IsOwner(db *gorm.DB, projectID, userID string) (bool, error) {
	role, ok, err := s.GetRole(db, projectID, userID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return role == models.ProjectRoleOwner, nil
}

func (s *ProjectAuthorizationServiceImpl) ValidateOwner(db *gorm.DB, projectID, userID string) (AuthorizationResult, error) {
	isOwner, err := s.IsOwner(db, projectID, userID)
	if err != nil {
		return AuthorizationResult{}, err
	}
	if !isOwner {
		return AuthorizationResult{
			IsAuthorized: false,
			ErrorMessage: apperrors.ErrPermissionDenied.Message,
		}, nil
	}
	return AuthorizationResult{IsAuthorized: true}, nil
}
