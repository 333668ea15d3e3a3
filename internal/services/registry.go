package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	RoleResolver        RoleResolver
	RatingService       RatingService
	ReviewService       ReviewService
	ModerationService   ModerationService
	RelatednessService  RelatednessService
	WorkService         WorkService
	SearchService       SearchService
	NotificationService NotificationService
}
