package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museworks_backend/internal/models"
	"museworks_backend/internal/services/dto"
	"museworks_backend/internal/testutil"
	"museworks_backend/pkg/apperrors"
)

func TestRatingService_UpsertIsIdempotentPerRater(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.CreateWork(t, env.db, testutil.WorkSpec{ID: "42"})
	svc := env.services.RatingService

	first, err := svc.UpsertRating(ctx, env.user.ID, &dto.UpsertRatingRequest{TargetType: "work", TargetID: "42", Score: 3})
	require.NoError(t, err)
	second, err := svc.UpsertRating(ctx, env.user.ID, &dto.UpsertRatingRequest{TargetType: "work", TargetID: "42", Score: 5})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Score)

	count, err := svc.ComputeCount(ctx, models.TargetTypeWork, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	avg, err := svc.ComputeAverage(ctx, models.TargetTypeWork, "42")
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)
}

func TestRatingService_UpsertValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := testutil.CreateWork(t, env.db, testutil.WorkSpec{})
	svc := env.services.RatingService

	tests := []struct {
		name    string
		raterID string
		req     dto.UpsertRatingRequest
		wantErr *apperrors.AppError
	}{
		{"score below range", env.user.ID, dto.UpsertRatingRequest{TargetType: "work", TargetID: work.ID, Score: 0}, apperrors.ErrInvalidScore},
		{"score above range", env.user.ID, dto.UpsertRatingRequest{TargetType: "work", TargetID: work.ID, Score: 6}, apperrors.ErrInvalidScore},
		{"unknown target type", env.user.ID, dto.UpsertRatingRequest{TargetType: "museum", TargetID: work.ID, Score: 3}, apperrors.ErrInvalidTargetType},
		{"missing target", env.user.ID, dto.UpsertRatingRequest{TargetType: "work", TargetID: "missing", Score: 3}, apperrors.ErrTargetNotFound},
		{"unknown rater", "ghost", dto.UpsertRatingRequest{TargetType: "work", TargetID: work.ID, Score: 3}, apperrors.ErrUnknownUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertRating(ctx, tt.raterID, &tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	count, err := svc.ComputeCount(ctx, models.TargetTypeWork, work.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRatingService_AverageAndSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	collection := testutil.CreateCollection(t, env.db, &models.Collection{})
	svc := env.services.RatingService

	avg, err := svc.ComputeAverage(ctx, models.TargetTypeCollection, collection.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	for _, score := range []int{4, 4, 5} {
		rater := testutil.CreateUser(t, env.db, "Rater", models.UserRoleUser)
		_, err := svc.UpsertRating(ctx, rater.ID, &dto.UpsertRatingRequest{TargetType: "collection", TargetID: collection.ID, Score: score})
		require.NoError(t, err)
	}

	avg, err = svc.ComputeAverage(ctx, models.TargetTypeCollection, collection.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, avg)
	assert.GreaterOrEqual(t, avg, 1.0)
	assert.LessOrEqual(t, avg, 5.0)

	summary, err := svc.GetRatingSummary(ctx, models.TargetTypeCollection, collection.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Count)
	assert.Equal(t, 4.3, summary.Average)
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, summary.Distribution)

	list, err := svc.GetRatingsForTarget(ctx, models.TargetTypeCollection, collection.ID)
	require.NoError(t, err)
	assert.Len(t, list.Ratings, 3)
	assert.Equal(t, int64(3), list.Count)

	// оценки работы с тем же id не смешиваются с оценками коллекции
	count, err := svc.ComputeCount(ctx, models.TargetTypeWork, collection.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRatingService_DeleteRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := testutil.CreateWork(t, env.db, testutil.WorkSpec{})
	svc := env.services.RatingService

	rating, err := svc.UpsertRating(ctx, env.user.ID, &dto.UpsertRatingRequest{TargetType: "work", TargetID: work.ID, Score: 2})
	require.NoError(t, err)

	err = svc.DeleteRating(ctx, rating.ID, env.designer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotRatingOwner)

	err = svc.DeleteRating(ctx, "missing", env.user.ID)
	assert.ErrorIs(t, err, apperrors.ErrRatingNotFound)

	require.NoError(t, svc.DeleteRating(ctx, rating.ID, env.user.ID))

	count, err := svc.ComputeCount(ctx, models.TargetTypeWork, work.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = svc.DeleteRating(ctx, rating.ID, env.user.ID)
	assert.ErrorIs(t, err, apperrors.ErrRatingNotFound)
}

func TestRoundAverage(t *testing.T) {
	assert.Equal(t, 4.3, roundAverage(13.0/3.0))
	assert.Equal(t, 3.5, roundAverage(3.5))
	assert.Equal(t, 2.7, roundAverage(2.66))
	assert.Equal(t, 0.0, roundAverage(0))
}
