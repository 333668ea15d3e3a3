package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Work - работа дизайнера, поданная в коллекцию.
// Статус меняется только модерацией, работы здесь никогда не удаляются.
type Work struct {
	BaseModel
	CollectionID string         `gorm:"type:varchar(36);not null;index" json:"collectionId"`
	DesignerID   string         `gorm:"type:varchar(36);not null;index" json:"designerId"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  *string        `json:"description,omitempty"`
	Images       datatypes.JSON `json:"-"`
	Tags         datatypes.JSON `json:"-"`
	Status       WorkStatus     `gorm:"type:varchar(20);not null;default:'submitted';index" json:"status"`
	ViewCount    int            `gorm:"not null;default:0" json:"viewCount"`
	LikeCount    int            `gorm:"not null;default:0" json:"likeCount"`
}

// TagList декодирует теги. Пустая или битая колонка дает пустой список.
func (w *Work) TagList() []string {
	return decodeStringList(w.Tags)
}

// ImageList декодирует URI изображений в исходном порядке.
func (w *Work) ImageList() []string {
	return decodeStringList(w.Images)
}

func decodeStringList(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return out
	}
	return list
}

// EncodeStringList - обратная операция для записи тегов и изображений.
func EncodeStringList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return datatypes.JSON(b)
}
