package services_test

import (
	"testing"

	"taskhub_backend/internal/models"
	"taskhub_backend/internal/services"
	"taskhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectFixture: проект с одним owner и одним member
func projectFixture(t *testing.T) (repo *fakeProjectRepo, projectID, ownerID, memberID string) {
	t.Helper()

	repo = newFakeProjectRepo(newFakeTaskRepo())
	ownerID = "owner-user-id"
	memberID = "member-user-id"

	project := &models.Project{Name: "Fixture Project"}
	require.NoError(t, repo.Create(nil, project, ownerID))
	require.NoError(t, repo.AddMember(nil, &models.ProjectUser{
		ProjectID: project.ID,
		UserID:    memberID,
		Role:      models.ProjectRoleMember,
	}))

	return repo, project.ID, ownerID, memberID
}

func TestGetRole(t *testing.T) {
	t.Parallel()

	repo, projectID, ownerID, memberID := projectFixture(t)
	authz := services.NewProjectAuthorizationService(repo)

	t.Run("owner", func(t *testing.T) {
		role, ok, err := authz.GetRole(nil, projectID, ownerID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, models.ProjectRoleOwner, role)
	})

	t.Run("member", func(t *testing.T) {
		role, ok, err := authz.GetRole(nil, projectID, memberID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, models.ProjectRoleMember, role)
	})

	t.Run("нет роли - не ошибка", func(t *testing.T) {
		_, ok, err := authz.GetRole(nil, projectID, "stranger-user-id")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("несуществующий проект - не ошибка", func(t *testing.T) {
		_, ok, err := authz.GetRole(nil, "no-such-project", ownerID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestIsOwner(t *testing.T) {
	t.Parallel()

	repo, projectID, ownerID, memberID := projectFixture(t)
	authz := services.NewProjectAuthorizationService(repo)

	cases := []struct {
		name   string
		userID string
		want   bool
	}{
		{"owner", ownerID, true},
		{"member не owner", memberID, false},
		{"посторонний", "stranger-user-id", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isOwner, err := authz.IsOwner(nil, projectID, tc.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, isOwner)
		})
	}
}

func TestValidateOwner(t *testing.T) {
	t.Parallel()

	repo, projectID, ownerID, memberID := projectFixture(t)
	authz := services.NewProjectAuthorizationService(repo)

	t.Run("owner авторизован без сообщения", func(t *testing.T) {
		result, err := authz.ValidateOwner(nil, projectID, ownerID)
		require.NoError(t, err)
		assert.True(t, result.IsAuthorized)
		assert.Empty(t, result.ErrorMessage)
	})

	// Member и посторонний неразличимы: одно и то же фиксированное сообщение
	t.Run("отказ не раскрывает причину", func(t *testing.T) {
		forMember, err := authz.ValidateOwner(nil, projectID, memberID)
		require.NoError(t, err)
		forStranger, err := authz.ValidateOwner(nil, projectID, "stranger-user-id")
		require.NoError(t, err)
		forMissingProject, err := authz.ValidateOwner(nil, "no-such-project", memberID)
		require.NoError(t, err)

		assert.False(t, forMember.IsAuthorized)
		assert.Equal(t, apperrors.ErrPermissionDenied.Message, forMember.ErrorMessage)
		assert.Equal(t, forMember, forStranger)
		assert.Equal(t, forMember, forMissingProject)
	})
}
