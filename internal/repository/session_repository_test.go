package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

func TestMemorySessionRepositoryLifecycle(t *testing.T) {
	repo := NewMemorySessionRepository()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.Session{ID: "s1", Token: "tok", Role: models.RoleAdmin}, time.Minute))

	found, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok", found.Token)

	now = now.Add(2 * time.Minute)
	_, err = repo.Find(ctx, "s1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	require.NoError(t, repo.Save(ctx, models.Session{ID: "s2", Token: "tok"}, time.Minute))
	require.NoError(t, repo.Delete(ctx, "s2"))
	_, err = repo.Find(ctx, "s2")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
