package dto

import "time"

// ====================
//  Request DTOs
// ====================

// SearchWorksRequest - фильтры поиска работ. Даты разбирает хендлер (RFC3339).
type SearchWorksRequest struct {
	Query        string `form:"query" validate:"omitempty,max=200"`
	Status       string `form:"status" validate:"omitempty,is-work-status"`
	CollectionID string `form:"collectionId" validate:"omitempty,max=36"`
	DesignerID   string `form:"designerId" validate:"omitempty,max=36"`
	MuseumID     string `form:"museumId" validate:"omitempty,max=36"`

	CreatedFrom *time.Time `form:"-"`
	CreatedTo   *time.Time `form:"-"`

	Page     int `form:"-"`
	PageSize int `form:"-"`
}

type SearchCollectionsRequest struct {
	Query    string   `form:"query" validate:"omitempty,max=200"`
	Status   string   `form:"status" validate:"omitempty,is-collection-status"`
	MuseumID string   `form:"museumId" validate:"omitempty,max=36"`
	MinPrize *float64 `form:"minPrize" validate:"omitempty,gte=0"`
	MaxPrize *float64 `form:"maxPrize" validate:"omitempty,gte=0"`

	DeadlineFrom *time.Time `form:"-"`
	DeadlineTo   *time.Time `form:"-"`

	Page     int `form:"-"`
	PageSize int `form:"-"`
}

// ====================
//  Response DTOs
// ====================

type PaginatedResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}
