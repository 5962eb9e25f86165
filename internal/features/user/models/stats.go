package models

// UserStats is the aggregate returned by GET /api/users/stats.
type UserStats struct {
	CreatedLast24h int64 `json:"createdLast24h" example:"3"`
}
