package repositories

import (
	"errors"
	"time"

	"taskhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectAlreadyExists = errors.New("project already exists")
	ErrMemberAlreadyExists  = errors.New("project member already exists")
	ErrMemberNotFound       = errors.New("project member not found")
)

// ProjectRepository определяет интерфейс для операций с проектами и участниками
type ProjectRepository interface {
	// Create создает проект и связь owner для создателя одной транзакцией
	Create(db *gorm.DB, project *models.Project, ownerID string) error
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	FindAll(db *gorm.DB) ([]models.Project, error)
	Update(db *gorm.DB, project *models.Project) error
	Delete(db *gorm.DB, id string) error

	// NameExists проверяет занятость имени проекта (имя уникально глобально),
	// excludeID исключает сам обновляемый проект
	NameExists(db *gorm.DB, name, excludeID string) (bool, error)

	// FindRole возвращает роль пользователя в проекте.
	// Отсутствие связи - нормальный исход (ok=false), не ошибка.
	FindRole(db *gorm.DB, projectID, userID string) (models.ProjectRole, bool, error)

	AddMember(db *gorm.DB, member *models.ProjectUser) error
	RemoveMember(db *gorm.DB, projectID, userID string) error
	ListMembers(db *gorm.DB, projectID string) ([]models.ProjectUser, error)
}

type projectRepository struct{}

// NewProjectRepository создает новый экземпляр ProjectRepository
func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(db *gorm.DB, project *models.Project, ownerID string) error {
	var existing models.Project
	if err := db.Where("name = ?", project.Name).First(&existing).Error; err == nil {
		return ErrProjectAlreadyExists
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		owner := models.ProjectUser{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      models.ProjectRoleOwner,
		}
		return tx.Create(&owner).Error
	})
}

func (r *projectRepository) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindAll(db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	err := db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(db *gorm.DB, project *models.Project) error {
	result := db.Model(project).Updates(map[string]interface{}{
		"name":        project.Name,
		"description": project.Description,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) NameExists(db *gorm.DB, name, excludeID string) (bool, error) {
	var count int64
	err := db.Model(&models.Project{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *projectRepository) Delete(db *gorm.DB, id string) error {
	// Каскад: участники и задачи уходят вместе с проектом
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

func (r *projectRepository) FindRole(db *gorm.DB, projectID, userID string) (models.ProjectRole, bool, error) {
	var link models.ProjectUser
	err := db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return link.Role, true, nil
}

func (r *projectRepository) AddMember(db *gorm.DB, member *models.ProjectUser) error {
	var existing models.ProjectUser
	err := db.Where("project_id = ? AND user_id = ?", member.ProjectID, member.UserID).
		First(&existing).Error
	if err == nil {
		return ErrMemberAlreadyExists
	}

	return db.Create(member).Error
}

func (r *projectRepository) RemoveMember(db *gorm.DB, projectID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
			Delete(&models.ProjectUser{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMemberNotFound
		}
		// Задачи удаленного участника остаются, но без исполнителя
		return tx.Model(&models.Task{}).
			Where("project_id = ? AND assigned_user_id = ?", projectID, userID).
			Update("assigned_user_id", nil).Error
	})
}

func (r *projectRepository) ListMembers(db *gorm.DB, projectID string) ([]models.ProjectUser, error) {
	var members []models.ProjectUser
	err := db.Where("project_id = ?", projectID).Find(&members).Error
	return members, err
}
