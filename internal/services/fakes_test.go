package services_test

import (
	"sync"
	"time"

	"taskhub_backend/internal/models"
	"taskhub_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory фейки репозиториев. Сигнатуры принимают *gorm.DB,
// как настоящие, но аргумент игнорируется (тесты передают nil).

// ---------------------------------------------------------------------------
// fakeUserRepo
// ---------------------------------------------------------------------------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByRefreshToken(_ *gorm.DB, userID, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok || user.RefreshToken == nil || *user.RefreshToken != token {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	if user.RefreshTokenExpiresAt == nil || !user.RefreshTokenExpiresAt.After(time.Now()) {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) SetRefreshToken(_ *gorm.DB, userID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.RefreshToken = &token
	user.RefreshTokenExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) RotateRefreshToken(_ *gorm.DB, userID, oldToken, newToken string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok || user.RefreshToken == nil || *user.RefreshToken != oldToken {
		return repositories.ErrRefreshTokenNotFound
	}
	user.RefreshToken = &newToken
	user.RefreshTokenExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(_ *gorm.DB, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok || user.RefreshToken == nil || *user.RefreshToken != token {
		return repositories.ErrRefreshTokenNotFound
	}
	user.RefreshToken = nil
	user.RefreshTokenExpiresAt = nil
	return nil
}

// expireRefreshToken - тестовый хелпер: делает сохраненный токен истекшим
func (r *fakeUserRepo) expireRefreshToken(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok && user.RefreshTokenExpiresAt != nil {
		past := time.Now().Add(-time.Hour)
		user.RefreshTokenExpiresAt = &past
	}
}

// ---------------------------------------------------------------------------
// fakeTaskRepo
// ---------------------------------------------------------------------------

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*models.Task)}
}

func (r *fakeTaskRepo) Create(_ *gorm.DB, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tasks {
		if existing.ProjectID == task.ProjectID && existing.Title == task.Title {
			return repositories.ErrTaskAlreadyExists
		}
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = time.Now()
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) FindByID(_ *gorm.DB, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

func (r *fakeTaskRepo) FindByProject(_ *gorm.DB, projectID string) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tasks []models.Task
	for _, task := range r.tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ *gorm.DB, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return repositories.ErrTaskNotFound
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repositories.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) TitleExists(_ *gorm.DB, projectID, title, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, task := range r.tasks {
		if task.ProjectID == projectID && task.Title == title && task.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTaskRepo) clearAssignments(projectID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, task := range r.tasks {
		if task.ProjectID == projectID && task.AssignedUserID != nil && *task.AssignedUserID == userID {
			task.AssignedUserID = nil
		}
	}
}

func (r *fakeTaskRepo) deleteByProject(projectID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, task := range r.tasks {
		if task.ProjectID == projectID {
			delete(r.tasks, id)
		}
	}
}

// ---------------------------------------------------------------------------
// fakeProjectRepo
// ---------------------------------------------------------------------------

type memberKey struct {
	projectID string
	userID    string
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*models.Project
	members  map[memberKey]models.ProjectRole

	// Нужен для каскада: удаление проекта и участника затрагивает задачи
	taskRepo *fakeTaskRepo
}

func newFakeProjectRepo(taskRepo *fakeTaskRepo) *fakeProjectRepo {
	return &fakeProjectRepo{
		projects: make(map[string]*models.Project),
		members:  make(map[memberKey]models.ProjectRole),
		taskRepo: taskRepo,
	}
}

func (r *fakeProjectRepo) Create(_ *gorm.DB, project *models.Project, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.projects {
		if existing.Name == project.Name {
			return repositories.ErrProjectAlreadyExists
		}
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	project.CreatedAt = time.Now()
	cp := *project
	r.projects[project.ID] = &cp
	r.members[memberKey{project.ID, ownerID}] = models.ProjectRoleOwner
	return nil
}

func (r *fakeProjectRepo) FindByID(_ *gorm.DB, id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, repositories.ErrProjectNotFound
	}
	cp := *project
	return &cp, nil
}

func (r *fakeProjectRepo) FindAll(_ *gorm.DB) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var projects []models.Project
	for _, project := range r.projects {
		projects = append(projects, *project)
	}
	return projects, nil
}

func (r *fakeProjectRepo) Update(_ *gorm.DB, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return repositories.ErrProjectNotFound
	}
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) NameExists(_ *gorm.DB, name, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, project := range r.projects {
		if project.Name == name && project.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) Delete(_ *gorm.DB, id string) error {
	r.mu.Lock()
	if _, ok := r.projects[id]; !ok {
		r.mu.Unlock()
		return repositories.ErrProjectNotFound
	}
	delete(r.projects, id)
	for key := range r.members {
		if key.projectID == id {
			delete(r.members, key)
		}
	}
	r.mu.Unlock()

	r.taskRepo.deleteByProject(id)
	return nil
}

func (r *fakeProjectRepo) FindRole(_ *gorm.DB, projectID, userID string) (models.ProjectRole, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.members[memberKey{projectID, userID}]
	if !ok {
		return "", false, nil
	}
	return role, true, nil
}

func (r *fakeProjectRepo) AddMember(_ *gorm.DB, member *models.ProjectUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memberKey{member.ProjectID, member.UserID}
	if _, ok := r.members[key]; ok {
		return repositories.ErrMemberAlreadyExists
	}
	r.members[key] = member.Role
	return nil
}

func (r *fakeProjectRepo) RemoveMember(_ *gorm.DB, projectID, userID string) error {
	r.mu.Lock()
	key := memberKey{projectID, userID}
	if _, ok := r.members[key]; !ok {
		r.mu.Unlock()
		return repositories.ErrMemberNotFound
	}
	delete(r.members, key)
	r.mu.Unlock()

	r.taskRepo.clearAssignments(projectID, userID)
	return nil
}

func (r *fakeProjectRepo) ListMembers(_ *gorm.DB, projectID string) ([]models.ProjectUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var members []models.ProjectUser
	for key, role := range r.members {
		if key.projectID == projectID {
			members = append(members, models.ProjectUser{
				ProjectID: key.projectID,
				UserID:    key.userID,
				Role:      role,
			})
		}
	}
	return members, nil
}
