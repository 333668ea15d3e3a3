package models

import "time"

// ReviewRecord - неизменяемая запись журнала модерации.
// ID монотонно растет и служит вторичным ключом сортировки при равном CreatedAt.
type ReviewRecord struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkID     string       `gorm:"type:varchar(36);not null;index" json:"workId"`
	ReviewerID string       `gorm:"type:varchar(36);not null;index" json:"reviewerId"`
	Action     ReviewAction `gorm:"type:varchar(20);not null" json:"action"`
	Comment    *string      `json:"comment,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;index" json:"createdAt"`
}

// ReviewRecordView - запись журнала с именем рецензента (read-side join).
type ReviewRecordView struct {
	ReviewRecord
	ReviewerName string `json:"reviewerName"`
}
