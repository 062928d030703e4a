package repositories

import (
	"errors"
	"time"

	"taskhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrRefreshTokenNotFound возвращается, когда сохраненный refresh-токен
	// не совпал с предъявленным (в т.ч. когда его успел заменить конкурентный запрос)
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// UserRepository определяет интерфейс для операций с пользователями
type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error

	// FindByRefreshToken находит пользователя по паре (id, токен).
	// Дополнительно фильтрует по сроку действия: истекший токен = не найден.
	FindByRefreshToken(db *gorm.DB, userID, token string) (*models.User, error)

	// SetRefreshToken безусловно перезаписывает refresh-токен пользователя
	// (точка ротации при логине)
	SetRefreshToken(db *gorm.DB, userID, token string, expiresAt time.Time) error

	// RotateRefreshToken заменяет oldToken на newToken условным UPDATE.
	// Из двух конкурентных ротаций с одним и тем же старым токеном
	// выигрывает ровно одна, вторая получает ErrRefreshTokenNotFound.
	RotateRefreshToken(db *gorm.DB, userID, oldToken, newToken string, expiresAt time.Time) error

	// ClearRefreshToken удаляет сохраненный refresh-токен (logout)
	ClearRefreshToken(db *gorm.DB, userID, token string) error
}

type userRepository struct{}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	// Check if user already exists
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *userRepository) FindByRefreshToken(db *gorm.DB, userID, token string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND refresh_token = ? AND refresh_token_expires_at > ?",
		userID, token, time.Now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetRefreshToken(db *gorm.DB, userID, token string, expiresAt time.Time) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"refresh_token":            token,
		"refresh_token_expires_at": expiresAt,
		"updated_at":               time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) RotateRefreshToken(db *gorm.DB, userID, oldToken, newToken string, expiresAt time.Time) error {
	// Условный UPDATE закрывает гонку read-then-write: WHERE сверяет
	// именно тот токен, который читал вызывающий код
	result := db.Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", userID, oldToken).
		Updates(map[string]interface{}{
			"refresh_token":            newToken,
			"refresh_token_expires_at": expiresAt,
			"updated_at":               time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

func (r *userRepository) ClearRefreshToken(db *gorm.DB, userID, token string) error {
	result := db.Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", userID, token).
		Updates(map[string]interface{}{
			"refresh_token":            nil,
			"refresh_token_expires_at": nil,
			"updated_at":               time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}
