package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museworks_backend/internal/models"
	"museworks_backend/internal/testutil"
)

func TestRelatednessService_RanksCandidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	testutil.CreateWork(t, env.db, testutil.WorkSpec{
		ID: "source", CollectionID: "col-1", DesignerID: "des-1",
		Tags: []string{"art", "blue"}, CreatedAt: base,
	})
	testutil.CreateWork(t, env.db, testutil.WorkSpec{
		ID: "c1", CollectionID: "col-1", DesignerID: "des-2",
		Tags: []string{"art"}, Status: models.WorkStatusApproved, CreatedAt: base.Add(time.Hour),
	})
	testutil.CreateWork(t, env.db, testutil.WorkSpec{
		ID: "c2", CollectionID: "col-2", DesignerID: "des-1",
		Tags: []string{"blue"}, CreatedAt: base.Add(2 * time.Hour),
	})
	testutil.CreateWork(t, env.db, testutil.WorkSpec{
		ID: "c3", CollectionID: "col-3", DesignerID: "des-3",
		CreatedAt: base.Add(3 * time.Hour),
	})

	related, err := env.services.RelatednessService.RelatedTo(ctx, "source", 6)
	require.NoError(t, err)
	require.Len(t, related, 3)
	assert.Equal(t, "c1", related[0].ID)
	assert.Equal(t, "c2", related[1].ID)
	assert.Equal(t, "c3", related[2].ID)

	related, err = env.services.RelatednessService.RelatedTo(ctx, "source", 1)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "c1", related[0].ID)
}

func TestRelatednessService_EmptyCases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.CreateWork(t, env.db, testutil.WorkSpec{ID: "only"})

	related, err := env.services.RelatednessService.RelatedTo(ctx, "nonexistent", 5)
	require.NoError(t, err)
	assert.NotNil(t, related)
	assert.Empty(t, related)

	related, err = env.services.RelatednessService.RelatedTo(ctx, "only", 0)
	require.NoError(t, err)
	assert.Empty(t, related)

	related, err = env.services.RelatednessService.RelatedTo(ctx, "only", 5)
	require.NoError(t, err)
	assert.Empty(t, related)
}
