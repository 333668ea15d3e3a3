package models

import "time"

// Collection - конкурсная коллекция музея, в которую дизайнеры подают работы.
type Collection struct {
	BaseModel
	MuseumID    string           `gorm:"type:varchar(36);not null;index" json:"museumId"`
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Description string           `json:"description"`
	Prize       float64          `gorm:"not null;default:0" json:"prize"`
	Deadline    *time.Time       `gorm:"index" json:"deadline,omitempty"`
	Status      CollectionStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
}
