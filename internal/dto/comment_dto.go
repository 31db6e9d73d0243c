package dto

// AddCommentRequest leaves a rating with optional feedback text.
type AddCommentRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// ApproveCommentRequest toggles a comment's moderation flag (admin only).
type ApproveCommentRequest struct {
	Approved bool `json:"approved"`
}

// CommentSummary reports the comment set with its computed average rating.
type CommentSummary struct {
	AverageRating string `json:"averageRating"`
	Total         int    `json:"total"`
}
