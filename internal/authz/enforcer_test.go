package authz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museworks_backend/internal/models"
)

func TestEmbeddedPolicy(t *testing.T) {
	e, err := NewEnforcer("")
	require.NoError(t, err)

	cases := []struct {
		role   models.UserRole
		object string
		action string
		want   bool
	}{
		{models.UserRoleAdmin, ObjectWork, ActionReview, true},
		{models.UserRoleMuseum, ObjectWork, ActionReview, true},
		{models.UserRoleMuseum, ObjectWork, ActionComment, true},
		{models.UserRoleDesigner, ObjectWork, ActionReview, false},
		{models.UserRoleUser, ObjectWork, ActionReview, false},
		{models.UserRoleUser, ObjectWork, ActionComment, false},
		{models.UserRoleUser, ObjectRating, ActionWrite, true},
		{models.UserRoleDesigner, ObjectRating, ActionWrite, true},
		{models.UserRoleAdmin, ObjectRating, ActionDelete, true},
		{models.UserRole("ghost"), ObjectRating, ActionWrite, false},
		{"", ObjectRating, ActionWrite, false},
	}
	for _, tc := range cases {
		got, err := e.Can(tc.role, tc.object, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s %s", tc.role, tc.object, tc.action)
	}
}

func TestPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.csv")
	require.NoError(t, os.WriteFile(path, []byte("p, admin, work, review\n"), 0o600))

	e, err := NewEnforcer(path)
	require.NoError(t, err)

	ok, err := e.Can(models.UserRoleAdmin, ObjectWork, ActionReview)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Can(models.UserRoleMuseum, ObjectWork, ActionReview)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMissingPolicyFile(t *testing.T) {
	_, err := NewEnforcer(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestMalformedPolicy(t *testing.T) {
	e, err := NewEnforcer("")
	require.NoError(t, err)
	assert.Error(t, loadPolicy(e.enforcer, "p, admin, work\n"))
}
