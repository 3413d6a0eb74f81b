package invites_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/invites"
	"github.com/hugh/nextsaas/internal/permissions"
	"github.com/hugh/nextsaas/internal/tasks"
	"github.com/hugh/nextsaas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	tasks []*asynq.Task
}

func (q *recordingQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "test"}, nil
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates invite and enqueues email", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		q := &recordingQueue{}
		svc := invites.NewService(ts.DB, q, nil)

		invite, err := svc.Create(ctx, ts.User.ID, ts.Org.Slug, "New@Example.com", permissions.RoleMember)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", invite.Email)
		require.NotNil(t, invite.AuthorID)
		assert.Equal(t, ts.User.ID, *invite.AuthorID)

		require.Len(t, q.tasks, 1)
		assert.Equal(t, tasks.TypeInviteEmail, q.tasks[0].Type())
	})

	t.Run("rejects auto-join domain", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		svc := invites.NewService(ts.DB, nil, nil)
		require.NoError(t, ts.DB.Model(ts.Org).Updates(map[string]interface{}{
			"domain":                        "acme.com",
			"should_attach_users_by_domain": true,
		}).Error)

		_, err := svc.Create(ctx, ts.User.ID, ts.Org.Slug, "john@acme.com", permissions.RoleMember)
		require.Error(t, err)
		assert.True(t, apperr.IsBadRequest(err))
		assert.Contains(t, err.Error(), "join your organization automatically")
	})

	t.Run("rejects duplicate invite", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		svc := invites.NewService(ts.DB, nil, nil)

		_, err := svc.Create(ctx, ts.User.ID, ts.Org.Slug, "dup@example.com", permissions.RoleMember)
		require.NoError(t, err)
		_, err = svc.Create(ctx, ts.User.ID, ts.Org.Slug, "dup@example.com", permissions.RoleAdmin)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("rejects existing member", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		svc := invites.NewService(ts.DB, nil, nil)
		member, _ := ts.UserWithRole(t, permissions.RoleMember)

		_, err := svc.Create(ctx, ts.User.ID, ts.Org.Slug, member.Email, permissions.RoleMember)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("member cannot invite", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		svc := invites.NewService(ts.DB, nil, nil)
		member, _ := ts.UserWithRole(t, permissions.RoleMember)

		_, err := svc.Create(ctx, member.ID, ts.Org.Slug, "x@example.com", permissions.RoleMember)
		assert.True(t, apperr.IsUnauthorized(err))
	})
}

func TestService_ListRevoke(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestContext(t)
	svc := invites.NewService(ts.DB, nil, nil)
	invite := testutil.CreateTestInvite(t, ts.DB, ts.Org, ts.User, "a@example.com", permissions.RoleMember)

	list, err := svc.List(ctx, ts.User.ID, ts.Org.Slug)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, ts.User.ID, list[0].Author.ID)

	require.NoError(t, svc.Revoke(ctx, ts.User.ID, ts.Org.Slug, invite.ID))
	err = svc.Revoke(ctx, ts.User.ID, ts.Org.Slug, invite.ID)
	assert.True(t, apperr.IsBadRequest(err))
}

func TestService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("creates membership and consumes invite", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		svc := invites.NewService(ts.DB, nil, nil)
		invitee := testutil.CreateTestUser(t, ts.DB)
		invite := testutil.CreateTestInvite(t, ts.DB, ts.Org, ts.User, invitee.Email, permissions.RoleBilling)

		pending, err := svc.PendingForUser(ctx, invitee.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.NotNil(t, pending[0].Organization)
		assert.Equal(t, ts.Org.Slug, pending[0].Organization.Slug)

		require.NoError(t, svc.Accept(ctx, invitee.ID, invite.ID))

		var member models.Member
		require.NoError(t, ts.DB.Where("organization_id = ? AND user_id = ?", ts.Org.ID, invitee.ID).First(&member).Error)
		assert.Equal(t, permissions.RoleBilling, member.Role)

		_, err = svc.Get(ctx, invite.ID)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("other user cannot accept", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		svc := invites.NewService(ts.DB, nil, nil)
		invite := testutil.CreateTestInvite(t, ts.DB, ts.Org, ts.User, "someone@example.com", permissions.RoleMember)
		intruder := testutil.CreateTestUser(t, ts.DB)

		err := svc.Accept(ctx, intruder.ID, invite.ID)
		assert.True(t, apperr.IsBadRequest(err))

		got, err := svc.Get(ctx, invite.ID)
		require.NoError(t, err)
		assert.Equal(t, invite.ID, got.ID)
	})

	t.Run("reject deletes invite only", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		svc := invites.NewService(ts.DB, nil, nil)
		invitee := testutil.CreateTestUser(t, ts.DB)
		invite := testutil.CreateTestInvite(t, ts.DB, ts.Org, ts.User, invitee.Email, permissions.RoleMember)

		require.NoError(t, svc.Reject(ctx, invitee.ID, invite.ID))

		var count int64
		ts.DB.Model(&models.Member{}).Where("user_id = ?", invitee.ID).Count(&count)
		assert.Zero(t, count)
		ts.DB.Model(&models.Invite{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("unknown invite", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		svc := invites.NewService(ts.DB, nil, nil)

		err := svc.Accept(ctx, ts.User.ID, uuid.New())
		assert.True(t, apperr.IsBadRequest(err))
	})
}
