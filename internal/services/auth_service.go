package services

import (
	"strings"

	"taskhub_backend/internal/auth"
	"taskhub_backend/internal/models"
	"taskhub_backend/internal/repositories"
	"taskhub_backend/internal/services/dto"
	"taskhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(db *gorm.DB, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(db *gorm.DB, req *dto.LogoutRequest) error
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	tokenService TokenService
}

func NewAuthService(userRepo repositories.UserRepository, tokenService TokenService) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Register - регистрация нового пользователя.
// Успешная регистрация сразу возвращает пару токенов.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        normalizeEmail(req.Email),
		Name:         req.Name,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.tokenService.CreateTokenResponse(db, user)
}

// Login - аутентификация пользователя.
// "Нет такого email" и "неверный пароль" неразличимы в ответе.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.tokenService.CreateTokenResponse(db, user)
}

// RefreshToken - обмен refresh-токена на новую пару (с ротацией)
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return s.tokenService.Refresh(db, req.UserID, req.RefreshToken)
}

// Logout - выход: сохраненный refresh-токен стирается.
// Повторный logout с тем же токеном не ошибка.
func (s *AuthServiceImpl) Logout(db *gorm.DB, req *dto.LogoutRequest) error {
	err := s.userRepo.ClearRefreshToken(db, req.UserID, req.RefreshToken)
	if err != nil && !apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

// normalizeEmail приводит email к каноническому виду
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
