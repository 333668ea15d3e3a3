package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museworks_backend/internal/models"
	"museworks_backend/internal/repositories"
	"museworks_backend/internal/testutil"
)

func TestCollectionWorker_CloseExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	expired := testutil.CreateCollection(t, db, &models.Collection{Deadline: &past})
	upcoming := testutil.CreateCollection(t, db, &models.Collection{Deadline: &future})

	w := NewCollectionWorker(db, testutil.NewTestGuard(), repositories.NewCollectionRepository(), time.Hour)
	w.now = func() time.Time { return now }

	closed, err := w.CloseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	var statuses []models.Collection
	require.NoError(t, db.Order("title").Find(&statuses).Error)
	byID := map[string]models.CollectionStatus{}
	for _, c := range statuses {
		byID[c.ID] = c.Status
	}
	assert.Equal(t, models.CollectionStatusClosed, byID[expired.ID])
	assert.Equal(t, models.CollectionStatusActive, byID[upcoming.ID])
}

func TestCollectionWorker_StopsOnCancel(t *testing.T) {
	db := testutil.NewTestDB(t)
	past := time.Now().UTC().Add(-time.Hour)
	c := testutil.CreateCollection(t, db, &models.Collection{Deadline: &past})

	w := NewCollectionWorker(db, testutil.NewTestGuard(), repositories.NewCollectionRepository(), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.Eventually(t, func() bool {
		var stored models.Collection
		if err := db.First(&stored, "id = ?", c.ID).Error; err != nil {
			return false
		}
		return stored.Status == models.CollectionStatusClosed
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
}
