package dto

import (
	"time"

	"museworks_backend/internal/models"
)

type WorkResponse struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collectionId"`
	DesignerID   string    `json:"designerId"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Images       []string  `json:"images"`
	Tags         []string  `json:"tags"`
	Status       string    `json:"status"`
	ViewCount    int       `json:"viewCount"`
	LikeCount    int       `json:"likeCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WorkDetailResponse - работа с названием коллекции и именем дизайнера
type WorkDetailResponse struct {
	WorkResponse
	CollectionTitle string `json:"collectionTitle,omitempty"`
	DesignerName    string `json:"designerName,omitempty"`
}

type CollectionResponse struct {
	ID          string     `json:"id"`
	MuseumID    string     `json:"museumId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Prize       float64    `json:"prize"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewWorkResponse(w *models.Work) WorkResponse {
	return WorkResponse{
		ID:           w.ID,
		CollectionID: w.CollectionID,
		DesignerID:   w.DesignerID,
		Title:        w.Title,
		Description:  w.Description,
		Images:       w.ImageList(),
		Tags:         w.TagList(),
		Status:       string(w.Status),
		ViewCount:    w.ViewCount,
		LikeCount:    w.LikeCount,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func NewWorkResponses(works []models.Work) []WorkResponse {
	out := make([]WorkResponse, 0, len(works))
	for i := range works {
		out = append(out, NewWorkResponse(&works[i]))
	}
	return out
}

func NewCollectionResponse(c *models.Collection) CollectionResponse {
	return CollectionResponse{
		ID:          c.ID,
		MuseumID:    c.MuseumID,
		Title:       c.Title,
		Description: c.Description,
		Prize:       c.Prize,
		Deadline:    c.Deadline,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}
