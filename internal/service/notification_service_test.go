package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/repository"
	"github.com/pipeforge/lead-api/internal/service"
	"github.com/pipeforge/lead-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNotificationService(t *testing.T) *service.NotificationService {
	t.Helper()

	db := testutil.SetupTestDB(t)
	return service.NewNotificationService(repository.NewNotificationRepository(db), zap.NewNop())
}

func notifyRequest(userID string) *domain.CreateNotificationRequest {
	return &domain.CreateNotificationRequest{
		UserID:  userID,
		Type:    domain.NotificationTypeLeadAssigned,
		Title:   "Lead assigned",
		Message: "A lead has been assigned to you",
	}
}

func TestNotificationService_CreateAndList(t *testing.T) {
	svc := newNotificationService(t)
	ctxAlice := testutil.ContextWithUser("acme", "alice")
	ctxBob := testutil.ContextWithUser("acme", "bob")

	created, err := svc.CreateForUser(ctxAlice, notifyRequest("alice"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.Read)

	_, err = svc.CreateForUser(ctxAlice, notifyRequest("bob"))
	require.NoError(t, err)

	// Each caller sees only their own notifications
	result, err := svc.ListForUser(ctxAlice, 0, 20, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	result, err = svc.ListForUser(ctxBob, 0, 20, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	svc := newNotificationService(t)
	ctxAlice := testutil.ContextWithUser("acme", "alice")
	ctxBob := testutil.ContextWithUser("acme", "bob")

	created, err := svc.CreateForUser(ctxAlice, notifyRequest("alice"))
	require.NoError(t, err)

	// Someone else's notification reads as missing, so existence never leaks
	err = svc.MarkAsRead(ctxBob, created.ID)
	assert.ErrorIs(t, err, service.ErrNotificationNotFound)

	require.NoError(t, svc.MarkAsRead(ctxAlice, created.ID))

	count, err := svc.GetUnreadCount(ctxAlice)
	require.NoError(t, err)
	assert.Equal(t, 0, count.Count)
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	svc := newNotificationService(t)
	ctxAlice := testutil.ContextWithUser("acme", "alice")

	for i := 0; i < 3; i++ {
		_, err := svc.CreateForUser(ctxAlice, notifyRequest("alice"))
		require.NoError(t, err)
	}

	count, err := svc.GetUnreadCount(ctxAlice)
	require.NoError(t, err)
	assert.Equal(t, 3, count.Count)

	require.NoError(t, svc.MarkAllAsRead(ctxAlice))

	count, err = svc.GetUnreadCount(ctxAlice)
	require.NoError(t, err)
	assert.Equal(t, 0, count.Count)

	result, err := svc.ListForUser(ctxAlice, 0, 20, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
}

func TestNotificationService_RequiresTenant(t *testing.T) {
	svc := newNotificationService(t)

	_, err := svc.CreateForUser(context.Background(), notifyRequest("alice"))
	assert.ErrorIs(t, err, service.ErrNoTenant)

	_, err = svc.GetUnreadCount(context.Background())
	assert.ErrorIs(t, err, service.ErrNoTenant)
}

func TestNotificationService_TenantIsolation(t *testing.T) {
	svc := newNotificationService(t)
	ctxAcme := testutil.ContextWithUser("acme", "alice")
	ctxGlobex := testutil.ContextWithUser("globex", "alice")

	created, err := svc.CreateForUser(ctxAcme, notifyRequest("alice"))
	require.NoError(t, err)

	// Same user id in another tenant sees nothing
	result, err := svc.ListForUser(ctxGlobex, 0, 20, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)

	err = svc.MarkAsRead(ctxGlobex, created.ID)
	assert.ErrorIs(t, err, service.ErrNotificationNotFound)
}
