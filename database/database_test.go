package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museworks_backend/internal/models"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(Options{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, m := range []any{&models.User{}, &models.Collection{}, &models.Work{}, &models.ReviewRecord{}, &models.Rating{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Rating{}, "idx_ratings_rater_target"))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
