package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"taskhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAccount - зарегистрированный через API пользователь с его токенами
type TestAccount struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	Password     string
}

// RegisterAccount регистрирует пользователя через API с уникальным email.
// Регистрация сразу возвращает пару токенов, отдельный логин не нужен.
func RegisterAccount(t *testing.T, ts *TestServer, name string) *TestAccount {
	t.Helper()

	email := fmt.Sprintf("user_%d@test.com", time.Now().UnixNano())
	password := "password123"

	registerBody := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Регистрация должна быть успешной. Ответ: "+bodyStr)

	var tokenResponse struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &tokenResponse))
	assert.NotEmpty(t, tokenResponse.AccessToken)
	assert.NotEmpty(t, tokenResponse.RefreshToken)

	// ID берем из БД: API не возвращает его в ответе регистрации
	var user models.User
	require.NoError(t, ts.DB.Where("email = ?", email).First(&user).Error)

	return &TestAccount{
		User:         &user,
		AccessToken:  tokenResponse.AccessToken,
		RefreshToken: tokenResponse.RefreshToken,
		Password:     password,
	}
}

// CreateProjectAPI создает проект через API с уникальным именем
func CreateProjectAPI(t *testing.T, ts *TestServer, token, namePrefix string) string {
	t.Helper()

	body := map[string]interface{}{
		"name":        fmt.Sprintf("%s %d", namePrefix, time.Now().UnixNano()),
		"description": "integration test project",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/projects", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Создание проекта должно быть успешным. Ответ: "+bodyStr)

	var project struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &project))
	require.NotEmpty(t, project.ID)
	return project.ID
}

// AddMemberAPI добавляет участника с ролью member
func AddMemberAPI(t *testing.T, ts *TestServer, ownerToken, projectID, userID string) {
	t.Helper()

	body := map[string]interface{}{
		"user_id": userID,
		"role":    "member",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+projectID+"/members", ownerToken, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Добавление участника должно быть успешным. Ответ: "+bodyStr)
}
