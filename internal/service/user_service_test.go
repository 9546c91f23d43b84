package service

import (
	"context"
	"testing"

	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser_ProvisionsOnFirstSight(t *testing.T) {
	db, _ := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	id := uuid.New()
	user, err := svc.EnsureUser(ctx, id, "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "juan@example.com", user.Email)
	assert.False(t, user.JoinDate.IsZero())

	// Second call is a lookup, not a second provisioning.
	again, err := svc.EnsureUser(ctx, id, "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.JoinDate.Unix(), again.JoinDate.Unix())
}

func TestUpdateProfile_ShallowMerge(t *testing.T) {
	db, userID := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	business := "Santos Creative Studio"
	updated, err := svc.UpdateProfile(ctx, userID, UpdateProfileRequest{BusinessName: &business})
	require.NoError(t, err)
	assert.Equal(t, business, updated.BusinessName)
	assert.Equal(t, "Maria Santos", updated.Name, "untouched fields survive the merge")

	profile, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, business, profile.BusinessName)
}
