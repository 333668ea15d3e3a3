package models

// User - участник площадки. Профили и аутентификация живут вне ядра,
// здесь нужны только имя для ленты рецензий, почта для уведомлений и роль.
type User struct {
	BaseModel
	DisplayName string   `gorm:"type:varchar(255);not null" json:"displayName"`
	Email       string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role        UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
}
