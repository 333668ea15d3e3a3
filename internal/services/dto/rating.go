package dto

import (
	"time"

	"museworks_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

type UpsertRatingRequest struct {
	TargetType string `json:"targetType" validate:"required,is-target-type"`
	TargetID   string `json:"targetId" validate:"required,max=36"`
	Score      int    `json:"score"` // диапазон проверяет сервис
}

// ======================
// Response DTOs
// ======================

type RatingResponse struct {
	ID         string    `json:"id"`
	RaterID    string    `json:"raterId"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type TargetRatingsResponse struct {
	TargetType string           `json:"targetType"`
	TargetID   string           `json:"targetId"`
	Ratings    []RatingResponse `json:"ratings"`
	Average    float64          `json:"average"`
	Count      int64            `json:"count"`
}

type RatingSummaryResponse struct {
	TargetType   string        `json:"targetType"`
	TargetID     string        `json:"targetId"`
	Average      float64       `json:"average"`
	Count        int64         `json:"count"`
	Distribution map[int]int64 `json:"distribution"`
}

func NewRatingResponse(r *models.Rating) RatingResponse {
	return RatingResponse{
		ID:         r.ID,
		RaterID:    r.RaterID,
		TargetType: string(r.TargetType),
		TargetID:   r.TargetID,
		Score:      r.Score,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
