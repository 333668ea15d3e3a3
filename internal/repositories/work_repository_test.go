package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museworks_backend/internal/models"
	"museworks_backend/internal/testutil"
)

func TestWorkRepository_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewWorkRepository()
	work := testutil.CreateWork(t, db, testutil.WorkSpec{})

	require.NoError(t, repo.UpdateStatus(db, work.ID, models.WorkStatusApproved))

	stored, err := repo.FindByID(db, work.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkStatusApproved, stored.Status)

	assert.ErrorIs(t, repo.UpdateStatus(db, "missing", models.WorkStatusRejected), ErrWorkNotFound)

	_, err = repo.FindByID(db, "missing")
	assert.ErrorIs(t, err, ErrWorkNotFound)
}

func TestWorkRepository_FindAllExceptAndExists(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewWorkRepository()
	testutil.CreateWork(t, db, testutil.WorkSpec{ID: "a"})
	testutil.CreateWork(t, db, testutil.WorkSpec{ID: "b"})

	others, err := repo.FindAllExcept(db, "a")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "b", others[0].ID)

	ok, err := repo.Exists(db, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(db, "zzz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollectionRepository_CloseExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCollectionRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	expired := testutil.CreateCollection(t, db, &models.Collection{Deadline: &past})
	open := testutil.CreateCollection(t, db, &models.Collection{Deadline: &future})
	draft := testutil.CreateCollection(t, db, &models.Collection{Deadline: &past, Status: models.CollectionStatusDraft})
	noDeadline := testutil.CreateCollection(t, db, &models.Collection{})

	closed, err := repo.CloseExpired(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	for id, want := range map[string]models.CollectionStatus{
		expired.ID:    models.CollectionStatusClosed,
		open.ID:       models.CollectionStatusActive,
		draft.ID:      models.CollectionStatusDraft,
		noDeadline.ID: models.CollectionStatusActive,
	} {
		c, err := repo.FindByID(db, id)
		require.NoError(t, err)
		assert.Equal(t, want, c.Status, id)
	}

	closed, err = repo.CloseExpired(db, now)
	require.NoError(t, err)
	assert.Zero(t, closed)
}
