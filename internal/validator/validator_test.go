package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingRequest struct {
	TargetType string `json:"targetType" validate:"required,is-target-type"`
	TargetID   string `json:"targetId" validate:"required"`
	Score      int    `json:"score" validate:"required"`
}

type searchQuery struct {
	Status   string   `form:"status" validate:"omitempty,is-collection-status"`
	Decision string   `json:"decision" validate:"omitempty,is-review-decision"`
	Work     string   `json:"workStatus" validate:"omitempty,is-work-status"`
	IDs      []string `json:"workIds" validate:"omitempty,max=2"`
}

func TestValidate_JSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&ratingRequest{TargetType: "designer"})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Must be one of: work, collection", verr.Errors["targetType"])
	assert.Equal(t, "This field is required", verr.Errors["targetId"])
	assert.Contains(t, verr.Errors, "score")
	assert.Contains(t, err.Error(), "field 'score'")
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&searchQuery{}))
	assert.NoError(t, v.Validate(&searchQuery{Status: "active", Decision: "award", Work: "winner"}))

	err := v.Validate(&searchQuery{Status: "archived", Decision: "maybe", Work: "active", IDs: []string{"a", "b", "c"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 4)
	assert.Contains(t, verr.Errors, "status")
	assert.Contains(t, verr.Errors, "decision")
	assert.Contains(t, verr.Errors, "workStatus")
	assert.Equal(t, "Must be at most 2", verr.Errors["workIds"])
}
