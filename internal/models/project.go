package models

type Project struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null"`
	Description string

	// Relations: удаление проекта каскадно удаляет участников и задачи
	Users []ProjectUser `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Tasks []Task        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ProjectUser - связь пользователя с проектом.
// Пара (ProjectID, UserID) уникальна; у создателя проекта роль owner.
type ProjectUser struct {
	ProjectID string      `gorm:"type:uuid;primaryKey"`
	UserID    string      `gorm:"type:uuid;primaryKey"`
	Role      ProjectRole `gorm:"type:varchar(20);not null"`
}

type Task struct {
	BaseModel
	// Название уникально внутри проекта
	Title       string `gorm:"not null;uniqueIndex:idx_tasks_project_title"`
	Description string
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'todo'"`
	ProjectID   string     `gorm:"type:uuid;not null;uniqueIndex:idx_tasks_project_title;index"`

	// Исполнитель опционален; при удалении участника из проекта сбрасывается в NULL
	AssignedUserID *string `gorm:"type:uuid"`
}
