package models

// Rating - голос пользователя. Одна строка на (rater, targetType, targetId).
type Rating struct {
	BaseModel
	RaterID    string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_rater_target,priority:1" json:"raterId"`
	TargetType TargetType `gorm:"type:varchar(20);not null;uniqueIndex:idx_ratings_rater_target,priority:2;index:idx_ratings_target,priority:1" json:"targetType"`
	TargetID   string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_rater_target,priority:3;index:idx_ratings_target,priority:2" json:"targetId"`
	Score      int        `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
}
