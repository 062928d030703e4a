package services

import (
	"time"

	"taskhub_backend/internal/auth"
	"taskhub_backend/internal/config"
	"taskhub_backend/internal/logger"
	"taskhub_backend/internal/models"
	"taskhub_backend/internal/repositories"
	"taskhub_backend/internal/services/dto"
	"taskhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// TokenService выдает пары access/refresh токенов и выполняет ротацию.
type TokenService interface {
	// CreateTokenResponse выдает новую пару токенов и перезаписывает
	// сохраненный refresh-токен пользователя. Это точка ротации: прежний
	// refresh-токен становится невалидным в момент выдачи нового,
	// независимо от того, пришли мы сюда через login или через refresh.
	CreateTokenResponse(db *gorm.DB, user *models.User) (*dto.TokenResponse, error)

	// Refresh обменивает refresh-токен на новую пару.
	// Неверный токен, чужой токен, истекший срок и несуществующий
	// пользователь неразличимы в ответе - всегда "Invalid refresh token."
	Refresh(db *gorm.DB, userID, refreshToken string) (*dto.TokenResponse, error)
}

type TokenServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewTokenService(userRepo repositories.UserRepository) TokenService {
	return &TokenServiceImpl{userRepo: userRepo}
}

func (s *TokenServiceImpl) CreateTokenResponse(db *gorm.DB, user *models.User) (*dto.TokenResponse, error) {
	accessToken, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	expiresAt := refreshExpiry()
	if err := s.userRepo.SetRefreshToken(db, user.ID, refreshToken, expiresAt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserName:     user.Name,
	}, nil
}

func (s *TokenServiceImpl) Refresh(db *gorm.DB, userID, refreshToken string) (*dto.TokenResponse, error) {
	// Поиск сразу по паре (id, токен) с фильтром по сроку действия
	user, err := s.userRepo.FindByRefreshToken(db, userID, refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}

	accessToken, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	newRefreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Условная ротация: WHERE сверяет предъявленный токен, поэтому из двух
	// конкурентных refresh с одним и тем же токеном выигрывает ровно один
	err = s.userRepo.RotateRefreshToken(db, user.ID, refreshToken, newRefreshToken, refreshExpiry())
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			// Проигравший гонку получает тот же ответ, что и неверный токен
			logger.Warn("refresh token rotation lost a concurrent race", "user_id", user.ID)
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		UserName:     user.Name,
	}, nil
}

func refreshExpiry() time.Time {
	cfg := config.GetConfig()
	return time.Now().Add(time.Duration(cfg.JWT.RefreshTTL) * 24 * time.Hour)
}
