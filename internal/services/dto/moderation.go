package dto

import (
	"time"

	"museworks_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

type ReviewWorkRequest struct {
	Decision string  `json:"decision" validate:"required,is-review-decision"`
	Comment  *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type BatchReviewRequest struct {
	WorkIDs  []string `json:"workIds" validate:"max=100,dive,required,max=36"`
	Decision string   `json:"decision" validate:"required,is-review-decision"`
	Comment  *string  `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type AddCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}

// ======================
// Response DTOs
// ======================

type ReviewRecordResponse struct {
	ID           uint      `json:"id"`
	WorkID       string    `json:"workId"`
	ReviewerID   string    `json:"reviewerId"`
	ReviewerName string    `json:"reviewerName,omitempty"`
	Action       string    `json:"action"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewResult struct {
	WorkID string               `json:"workId"`
	Status string               `json:"status"`
	Record ReviewRecordResponse `json:"record"`
}

// BatchFailure - причина, по которой работа из пакета не обновлена
type BatchFailure struct {
	WorkID  string `json:"workId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BatchReviewResult struct {
	Updated int            `json:"updated"`
	Failed  []BatchFailure `json:"failed"`
}

func NewReviewRecordResponse(r *models.ReviewRecord, reviewerName string) ReviewRecordResponse {
	return ReviewRecordResponse{
		ID:           r.ID,
		WorkID:       r.WorkID,
		ReviewerID:   r.ReviewerID,
		ReviewerName: reviewerName,
		Action:       string(r.Action),
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}
