package dto

import "time"

// PollItemRequest is one votable option of a new poll.
type PollItemRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// CreatePollRequest replaces the current poll (admin only). Any running poll
// is archived first.
type CreatePollRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description,omitempty"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate" validate:"required"`
	Items       []PollItemRequest `json:"items" validate:"required,min=2,dive"`
}

// VoteRequest casts the caller's single vote in the current poll.
type VoteRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}
