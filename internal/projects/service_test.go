package projects_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/permissions"
	"github.com/hugh/nextsaas/internal/projects"
	"github.com/hugh/nextsaas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestContext(t)
	svc := projects.NewService(ts.DB, nil)

	t.Run("member creates project", func(t *testing.T) {
		member, _ := ts.UserWithRole(t, permissions.RoleMember)

		project, err := svc.Create(ctx, member.ID, ts.Org.Slug, projects.Input{
			Name:        "Landing Page",
			Description: "Marketing site",
		})
		require.NoError(t, err)
		assert.Equal(t, "landing-page", project.Slug)
		assert.Equal(t, member.ID, project.OwnerID)
		assert.Equal(t, ts.Org.ID, project.OrganizationID)
	})

	t.Run("billing cannot create", func(t *testing.T) {
		billing, _ := ts.UserWithRole(t, permissions.RoleBilling)

		_, err := svc.Create(ctx, billing.ID, ts.Org.Slug, projects.Input{Name: "Nope"})
		assert.True(t, apperr.IsUnauthorized(err))
	})

	t.Run("outsider cannot create", func(t *testing.T) {
		outsider := testutil.CreateTestUser(t, ts.DB)

		_, err := svc.Create(ctx, outsider.ID, ts.Org.Slug, projects.Input{Name: "Nope"})
		assert.True(t, apperr.IsUnauthorized(err))
	})
}

func TestService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestContext(t)
	svc := projects.NewService(ts.DB, nil)

	older := testutil.CreateTestProject(t, ts.DB, ts.Org, ts.User)
	require.NoError(t, ts.DB.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := testutil.CreateTestProject(t, ts.DB, ts.Org, ts.User)

	otherOwner := testutil.CreateTestUser(t, ts.DB)
	otherOrg := testutil.CreateTestOrg(t, ts.DB, otherOwner)
	foreign := testutil.CreateTestProject(t, ts.DB, otherOrg, otherOwner)

	list, err := svc.List(ctx, ts.User.ID, ts.Org.Slug)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	require.NotNil(t, list[0].Owner)
	assert.Equal(t, ts.User.Email, list[0].Owner.Email)

	got, err := svc.Get(ctx, ts.User.ID, ts.Org.Slug, newer.Slug)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	_, err = svc.Get(ctx, ts.User.ID, ts.Org.Slug, foreign.Slug)
	require.Error(t, err)
	assert.True(t, apperr.IsBadRequest(err))
	assert.Equal(t, "Project not found.", err.Error())
}

func TestService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestContext(t)
	svc := projects.NewService(ts.DB, nil)
	project := testutil.CreateTestProject(t, ts.DB, ts.Org, ts.User)

	t.Run("update", func(t *testing.T) {
		err := svc.Update(ctx, ts.User.ID, ts.Org.Slug, project.ID, projects.Input{
			Name:        "Renamed",
			Description: "New description",
		})
		require.NoError(t, err)

		var stored models.Project
		require.NoError(t, ts.DB.First(&stored, "id = ?", project.ID).Error)
		assert.Equal(t, "Renamed", stored.Name)
		assert.Equal(t, project.Slug, stored.Slug)
	})

	t.Run("billing cannot update or delete", func(t *testing.T) {
		billing, _ := ts.UserWithRole(t, permissions.RoleBilling)

		err := svc.Update(ctx, billing.ID, ts.Org.Slug, project.ID, projects.Input{Name: "X"})
		assert.True(t, apperr.IsUnauthorized(err))

		err = svc.Delete(ctx, billing.ID, ts.Org.Slug, project.ID)
		assert.True(t, apperr.IsUnauthorized(err))
	})

	t.Run("missing project", func(t *testing.T) {
		err := svc.Delete(ctx, ts.User.ID, ts.Org.Slug, uuid.New())
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, ts.User.ID, ts.Org.Slug, project.ID))

		var count int64
		ts.DB.Model(&models.Project{}).Count(&count)
		assert.Zero(t, count)
	})
}
