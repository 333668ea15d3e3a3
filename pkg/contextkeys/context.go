package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// UserIDKey - ключ идентификатора аутентифицированного пользователя
	UserIDKey = contextKey("user_id")
	// RequestIDKey - ключ идентификатора запроса
	RequestIDKey = contextKey("request_id")
)
