package models

// Achievement is an earned badge with its bonus points. Append-only.
type Achievement struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Name         string `json:"name" db:"achievement_name"`
	Description  string `json:"description" db:"achievement_description"`
	Points       int    `json:"points" db:"points_awarded"`
	AchievedDate string `json:"achieved_date" db:"achieved_date"`
}
