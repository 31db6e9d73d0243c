package models

import "time"

// PollItem is one votable option. Votes hold the usernames that picked it.
type PollItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Votes       []string `json:"votes"`
}

// Poll is the single active poll or an archived entry in the history. Votes
// are immutable once cast.
type Poll struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Items       []PollItem `json:"items"`
	CreatedAt   time.Time  `json:"createdAt"`
	CreatedBy   string     `json:"createdBy"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Ended       bool       `json:"ended,omitempty"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
}

// HasVoted reports whether the username appears in any item's vote list.
// A voter appears in at most one list per poll.
func (p Poll) HasVoted(username string) bool {
	for _, item := range p.Items {
		for _, voter := range item.Votes {
			if voter == username {
				return true
			}
		}
	}
	return false
}
