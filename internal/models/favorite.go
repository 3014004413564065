package models

// Favorite marks a café as favorited by a user. The row's presence is the
// whole state: there is exactly one row per (user, café) pair or none, so
// favoriting is a toggle set rather than a log.
type Favorite struct {
	UserID uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CafeID uint `json:"cafe_id" gorm:"primaryKey;autoIncrement:false"`
}
