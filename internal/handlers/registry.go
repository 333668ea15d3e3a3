package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	RatingHandler *RatingHandler
	ReviewHandler *ReviewHandler
	WorkHandler   *WorkHandler
	SearchHandler *SearchHandler
	HealthHandler *HealthHandler
}
