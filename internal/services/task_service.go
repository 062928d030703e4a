package services

import (
	"taskhub_backend/internal/models"
	"taskhub_backend/internal/repositories"
	"taskhub_backend/internal/services/dto"
	"taskhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TaskService struct {
	taskRepo     repositories.TaskRepository
	projectRepo  repositories.ProjectRepository
	authzService ProjectAuthorizationService
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	authzService ProjectAuthorizationService,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		authzService: authzService,
	}
}

// CreateTask - только owner проекта. Проверка роли идет первой:
// не-owner получает 403 и для несуществующего проекта.
func (s *TaskService) CreateTask(db *gorm.DB, projectID, requesterID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := s.requireOwner(db, projectID, requesterID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.TaskStatusToDo,
		ProjectID:      projectID,
		AssignedUserID: req.AssignedUserID,
	}

	if err := s.taskRepo.Create(db, task); err != nil {
		if apperrors.Is(err, repositories.ErrTaskAlreadyExists) {
			return nil, apperrors.ErrTaskTitleTaken
		}
		return nil, apperrors.InternalError(err)
	}

	return buildTaskResponse(task), nil
}

// GetTask доступен любому аутентифицированному пользователю (текущее поведение)
func (s *TaskService) GetTask(db *gorm.DB, taskID string) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(db, taskID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildTaskResponse(task), nil
}

// ListTasks возвращает задачи проекта; чтение не ограничено участием
func (s *TaskService) ListTasks(db *gorm.DB, projectID string) ([]dto.TaskResponse, error) {
	if _, err := s.projectRepo.FindByID(db, projectID); err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	tasks, err := s.taskRepo.FindByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *buildTaskResponse(&tasks[i]))
	}
	return responses, nil
}

// UpdateTask - только owner владеющего проекта.
// Здесь авторизация требует саму задачу (из нее берется проект),
// поэтому отсутствующая задача дает 404 до проверки роли.
func (s *TaskService) UpdateTask(db *gorm.DB, taskID, requesterID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(db, taskID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.requireOwner(db, task.ProjectID, requesterID); err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != task.Title {
		taken, err := s.taskRepo.TitleExists(db, task.ProjectID, *req.Title, task.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrTaskTitleTaken
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return nil, apperrors.NewBadRequestError("Invalid task status")
		}
		task.Status = *req.Status
	}
	if req.AssignedUserID != nil {
		task.AssignedUserID = req.AssignedUserID
	}

	if err := s.taskRepo.Update(db, task); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildTaskResponse(task), nil
}

// DeleteTask - только owner владеющего проекта
func (s *TaskService) DeleteTask(db *gorm.DB, taskID, requesterID string) error {
	task, err := s.taskRepo.FindByID(db, taskID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.requireOwner(db, task.ProjectID, requesterID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(db, task.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *TaskService) requireOwner(db *gorm.DB, projectID, requesterID string) error {
	result, err := s.authzService.ValidateOwner(db, projectID, requesterID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !result.IsAuthorized {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

func buildTaskResponse(t *models.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		ProjectID:      t.ProjectID,
		AssignedUserID: t.AssignedUserID,
		CreatedAt:      t.CreatedAt,
	}
}
