package repositories

import (
	"errors"
	"time"

	"taskhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyExists = errors.New("task already exists")
)

// TaskRepository определяет интерфейс для операций с задачами
type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	FindByID(db *gorm.DB, id string) (*models.Task, error)
	FindByProject(db *gorm.DB, projectID string) ([]models.Task, error)
	Update(db *gorm.DB, task *models.Task) error
	Delete(db *gorm.DB, id string) error

	// TitleExists проверяет занятость названия внутри проекта,
	// excludeID исключает саму обновляемую задачу
	TitleExists(db *gorm.DB, projectID, title, excludeID string) (bool, error)
}

type taskRepository struct{}

// NewTaskRepository создает новый экземпляр TaskRepository
func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(db *gorm.DB, task *models.Task) error {
	// Название уникально внутри проекта
	var existing models.Task
	err := db.Where("project_id = ? AND title = ?", task.ProjectID, task.Title).
		First(&existing).Error
	if err == nil {
		return ErrTaskAlreadyExists
	}

	return db.Create(task).Error
}

func (r *taskRepository) FindByID(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindByProject(db *gorm.DB, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(db *gorm.DB, task *models.Task) error {
	result := db.Model(task).Updates(map[string]interface{}{
		"title":            task.Title,
		"description":      task.Description,
		"status":           task.Status,
		"assigned_user_id": task.AssignedUserID,
		"updated_at":       time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) TitleExists(db *gorm.DB, projectID, title, excludeID string) (bool, error) {
	var count int64
	err := db.Model(&models.Task{}).
		Where("project_id = ? AND title = ? AND id <> ?", projectID, title, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *taskRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
