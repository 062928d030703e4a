package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"taskhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthFlow - регистрация, логин, /users/me
func TestAuthFlow(t *testing.T) {
	t.Parallel()

	// 1. Подготовка (Arrange)
	ts := GetTestServer(t)
	account := helpers.RegisterAccount(t, ts, "Auth Flow User")

	// 2. Действие: логин с теми же учетными данными (Act)
	loginBody := map[string]interface{}{
		"email":    account.User.Email,
		"password": account.Password,
	}
	logRes, logBodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)

	// 3. Проверка (Assert)
	assert.Equal(t, http.StatusOK, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "accessToken")
	assert.Contains(t, logBodyStr, "refreshToken")

	var tokens struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal([]byte(logBodyStr), &tokens))

	// Токен логина работает на защищенном маршруте
	meRes, meBodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, meRes.StatusCode)
	assert.Contains(t, meBodyStr, account.User.Email)
}

// TestRegister_DuplicateEmail - защита от дубликатов email
func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	account := helpers.RegisterAccount(t, ts, "Original User")

	duplicateBody := map[string]interface{}{
		"name":     "Imposter",
		"email":    account.User.Email,
		"password": "password123",
	}
	regRes, regBodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", duplicateBody)

	assert.Equal(t, http.StatusConflict, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "Email already exists")
}

// TestLogin_BadCredentials - неверный пароль и несуществующий email
// дают один и тот же ответ
func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	account := helpers.RegisterAccount(t, ts, "Bad Creds User")

	wrongPassword := map[string]interface{}{
		"email":    account.User.Email,
		"password": "definitely-wrong",
	}
	res1, body1 := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", wrongPassword)

	unknownEmail := map[string]interface{}{
		"email":    "nobody_here@test.com",
		"password": account.Password,
	}
	res2, body2 := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", unknownEmail)

	assert.Equal(t, http.StatusUnauthorized, res1.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, res2.StatusCode)
	assert.Contains(t, body1, "Invalid email or password")
	assert.Equal(t, body1, body2)
}

// TestRefreshToken_Rotation - обмен одноразовый: прежний токен
// перестает работать после первого успешного refresh
func TestRefreshToken_Rotation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	account := helpers.RegisterAccount(t, ts, "Rotation User")

	refreshBody := map[string]interface{}{
		"userId":       account.User.ID,
		"refreshToken": account.RefreshToken,
	}

	// Первый обмен успешен и возвращает новую пару
	res1, body1 := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	require.Equal(t, http.StatusOK, res1.StatusCode, "Ответ: "+body1)

	var rotated struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal([]byte(body1), &rotated))
	assert.NotEqual(t, account.RefreshToken, rotated.RefreshToken)

	// Повторное предъявление прежнего токена отклоняется
	res2, body2 := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	assert.Equal(t, http.StatusBadRequest, res2.StatusCode)
	assert.Contains(t, body2, "Invalid refresh token.")

	// Новый токен работает
	res3, body3 := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"userId":       account.User.ID,
		"refreshToken": rotated.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, res3.StatusCode, "Ответ: "+body3)
}

// TestRefreshToken_ForeignToken - чужой refresh-токен отклоняется
// тем же ответом, что и несуществующий
func TestRefreshToken_ForeignToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	alice := helpers.RegisterAccount(t, ts, "Alice")
	bob := helpers.RegisterAccount(t, ts, "Bob")

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"userId":       bob.User.ID,
		"refreshToken": alice.RefreshToken,
	})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid refresh token.")
}

// TestLogout - после выхода refresh-токен мертв, повторный logout не ошибка
func TestLogout(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	account := helpers.RegisterAccount(t, ts, "Logout User")

	logoutBody := map[string]interface{}{
		"userId":       account.User.ID,
		"refreshToken": account.RefreshToken,
	}

	res1, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", "", logoutBody)
	assert.Equal(t, http.StatusOK, res1.StatusCode)

	// Стертый токен больше не обменивается
	refreshRes, refreshBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"userId":       account.User.ID,
		"refreshToken": account.RefreshToken,
	})
	assert.Equal(t, http.StatusBadRequest, refreshRes.StatusCode)
	assert.Contains(t, refreshBody, "Invalid refresh token.")

	// Идемпотентность
	res2, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", "", logoutBody)
	assert.Equal(t, http.StatusOK, res2.StatusCode)
}

// TestProtectedRoute_RequiresToken - защищенные маршруты без токена дают 401
func TestProtectedRoute_RequiresToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
