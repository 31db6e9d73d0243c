package models

import "time"

// Comment is a rating with free-text feedback. Each identity is expected to
// leave at most one; the lookup gate lives with the caller, not the store.
type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
	Likes      int       `json:"likes"`
	IsApproved bool      `json:"isApproved"`
}
