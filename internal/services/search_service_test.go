package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museworks_backend/internal/models"
	"museworks_backend/internal/services/dto"
	"museworks_backend/internal/testutil"
	"museworks_backend/pkg/apperrors"
)

func TestSearchService_CollectionsEmptyResult(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateCollection(t, env.db, &models.Collection{Status: models.CollectionStatusDraft})

	res, err := env.services.SearchService.SearchCollections(context.Background(), &dto.SearchCollectionsRequest{
		Status:   string(models.CollectionStatusActive),
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Total)
	assert.Zero(t, res.TotalPages)
	assert.False(t, res.HasMore)
}

func TestSearchService_WorksPaginationCoversAllRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		testutil.CreateWork(t, env.db, testutil.WorkSpec{
			ID:        fmt.Sprintf("w%d", i),
			Title:     fmt.Sprintf("Work %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	seen := make(map[string]bool)
	var order []string
	for page := 1; page <= 3; page++ {
		res, err := env.services.SearchService.SearchWorks(ctx, &dto.SearchWorksRequest{Page: page, PageSize: 2})
		require.NoError(t, err)

		assert.Equal(t, int64(5), res.Total)
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, page < 3, res.HasMore)
		assert.LessOrEqual(t, len(res.Items), 2)

		for _, item := range res.Items {
			assert.False(t, seen[item.ID], "work %s returned twice", item.ID)
			seen[item.ID] = true
			order = append(order, item.ID)
		}
	}

	assert.Len(t, seen, 5)
	assert.Equal(t, []string{"w4", "w3", "w2", "w1", "w0"}, order)

	res, err := env.services.SearchService.SearchWorks(ctx, &dto.SearchWorksRequest{Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(5), res.Total)
}

func TestSearchService_WorksFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	museum := testutil.CreateCollection(t, env.db, &models.Collection{MuseumID: env.museum.ID, Title: "Modern"})
	other := testutil.CreateCollection(t, env.db, &models.Collection{Title: "Classic"})

	testutil.CreateWork(t, env.db, testutil.WorkSpec{ID: "a", CollectionID: museum.ID, Title: "Blue Chair", Status: models.WorkStatusApproved})
	testutil.CreateWork(t, env.db, testutil.WorkSpec{ID: "b", CollectionID: museum.ID, Title: "Red table", Description: "a BLUE accent"})
	testutil.CreateWork(t, env.db, testutil.WorkSpec{ID: "c", CollectionID: other.ID, Title: "Green lamp", DesignerID: env.designer.ID})

	tests := []struct {
		name string
		req  dto.SearchWorksRequest
		want []string
	}{
		{"keyword matches title and description case-insensitively", dto.SearchWorksRequest{Query: "blue"}, []string{"a", "b"}},
		{"status", dto.SearchWorksRequest{Status: "approved"}, []string{"a"}},
		{"museum", dto.SearchWorksRequest{MuseumID: env.museum.ID}, []string{"a", "b"}},
		{"designer", dto.SearchWorksRequest{DesignerID: env.designer.ID}, []string{"c"}},
		{"collection", dto.SearchWorksRequest{CollectionID: other.ID}, []string{"c"}},
		{"no match", dto.SearchWorksRequest{Query: "purple"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Page, req.PageSize = 1, 20

			res, err := env.services.SearchService.SearchWorks(ctx, &req)
			require.NoError(t, err)

			ids := make([]string, 0, len(res.Items))
			for _, item := range res.Items {
				ids = append(ids, item.ID)
			}
			assert.ElementsMatch(t, tt.want, ids)
			assert.Equal(t, int64(len(tt.want)), res.Total)
		})
	}
}

func TestSearchService_CollectionFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	testutil.CreateCollection(t, env.db, &models.Collection{Title: "Spring Lights", Prize: 500})
	testutil.CreateCollection(t, env.db, &models.Collection{Title: "Winter", Description: "cold light", Prize: 2000})
	testutil.CreateCollection(t, env.db, &models.Collection{Title: "Archive", Status: models.CollectionStatusClosed, Prize: 100})

	minPrize, maxPrize := 400.0, 1000.0
	res, err := env.services.SearchService.SearchCollections(ctx, &dto.SearchCollectionsRequest{
		MinPrize: &minPrize, MaxPrize: &maxPrize, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Spring Lights", res.Items[0].Title)

	res, err = env.services.SearchService.SearchCollections(ctx, &dto.SearchCollectionsRequest{Query: "LIGHT", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	_, err = env.services.SearchService.SearchCollections(ctx, &dto.SearchCollectionsRequest{
		MinPrize: &maxPrize, MaxPrize: &minPrize, Page: 1, PageSize: 10,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestSearchService_PageValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantErr  *apperrors.AppError
	}{
		{"page zero", 0, 20, apperrors.ErrInvalidPage},
		{"page size zero", 1, 0, apperrors.ErrInvalidPageSize},
		{"page size too large", 1, MaxPageSize + 1, apperrors.ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.SearchService.SearchWorks(ctx, &dto.SearchWorksRequest{Page: tt.page, PageSize: tt.pageSize})
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = env.services.SearchService.SearchCollections(ctx, &dto.SearchCollectionsRequest{Page: tt.page, PageSize: tt.pageSize})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := env.services.SearchService.SearchWorks(ctx, &dto.SearchWorksRequest{Status: "draft", Page: 1, PageSize: 10})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestBuildPaginatedResponse(t *testing.T) {
	res := buildPaginatedResponse([]int{1, 2}, 7, 2, 3)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasMore)

	res = buildPaginatedResponse([]int{}, 0, 1, 20)
	assert.Zero(t, res.TotalPages)
	assert.False(t, res.HasMore)
}
