package services

import (
	"taskhub_backend/internal/models"
	"taskhub_backend/internal/repositories"
	"taskhub_backend/internal/services/dto"
	"taskhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepo  repositories.ProjectRepository
	userRepo     repositories.UserRepository
	authzService ProjectAuthorizationService
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	authzService ProjectAuthorizationService,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		authzService: authzService,
	}
}

// CreateProject создает проект; создатель становится его owner
func (s *ProjectService) CreateProject(db *gorm.DB, creatorID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.projectRepo.Create(db, project, creatorID); err != nil {
		if apperrors.Is(err, repositories.ErrProjectAlreadyExists) {
			return nil, apperrors.ErrProjectNameTaken
		}
		return nil, apperrors.InternalError(err)
	}

	return buildProjectResponse(project), nil
}

// GetProject доступен любому аутентифицированному пользователю.
// Чтение намеренно не ограничено участием в проекте (текущее поведение).
func (s *ProjectService) GetProject(db *gorm.DB, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildProjectResponse(project), nil
}

// ListProjects возвращает все проекты независимо от участия (текущее поведение)
func (s *ProjectService) ListProjects(db *gorm.DB) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *buildProjectResponse(&projects[i]))
	}
	return responses, nil
}

// UpdateProject - только owner. Проверка роли идет первой, поэтому
// для не-owner ответ одинаков независимо от существования проекта.
func (s *ProjectService) UpdateProject(db *gorm.DB, projectID, requesterID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if err := s.requireOwner(db, projectID, requesterID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil && *req.Name != project.Name {
		taken, err := s.projectRepo.NameExists(db, *req.Name, project.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrProjectNameTaken
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.projectRepo.Update(db, project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildProjectResponse(project), nil
}

// DeleteProject - только owner; каскадно удаляет участников и задачи
func (s *ProjectService) DeleteProject(db *gorm.DB, projectID, requesterID string) error {
	if err := s.requireOwner(db, projectID, requesterID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(db, projectID); err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// AddMember - только owner добавляет участников
func (s *ProjectService) AddMember(db *gorm.DB, projectID, requesterID string, req *dto.AddMemberRequest) error {
	if err := s.requireOwner(db, projectID, requesterID); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(db, req.UserID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	member := &models.ProjectUser{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      req.Role,
	}
	if err := s.projectRepo.AddMember(db, member); err != nil {
		if apperrors.Is(err, repositories.ErrMemberAlreadyExists) {
			return apperrors.ErrConflict(err, "project", "User is already a member of this project")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// RemoveMember - только owner. Задачи удаленного участника
// остаются в проекте без исполнителя.
func (s *ProjectService) RemoveMember(db *gorm.DB, projectID, requesterID, userID string) error {
	if err := s.requireOwner(db, projectID, requesterID); err != nil {
		return err
	}

	if err := s.projectRepo.RemoveMember(db, projectID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrMemberNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// ListMembers доступен любому аутентифицированному пользователю
func (s *ProjectService) ListMembers(db *gorm.DB, projectID string) ([]dto.MemberResponse, error) {
	if _, err := s.projectRepo.FindByID(db, projectID); err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	members, err := s.projectRepo.ListMembers(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, dto.MemberResponse{UserID: m.UserID, Role: m.Role})
	}
	return responses, nil
}

// requireOwner переводит отказ авторизации в фиксированную 403
func (s *ProjectService) requireOwner(db *gorm.DB, projectID, requesterID string) error {
	result, err := s.authzService.ValidateOwner(db, projectID, requesterID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !result.IsAuthorized {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

func buildProjectResponse(p *models.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
