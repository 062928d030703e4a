package models

import "time"

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`

	// Refresh токен хранится прямо на пользователе: один активный токен,
	// каждая выдача (login или refresh) перезаписывает предыдущий.
	// Инвариант: RefreshToken != nil => RefreshTokenExpiresAt != nil
	RefreshToken          *string `gorm:"index"`
	RefreshTokenExpiresAt *time.Time

	// Relations
	Memberships []ProjectUser `gorm:"foreignKey:UserID"`
}
