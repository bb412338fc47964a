package models

import "time"

// Solution is a proposed resolution attached to exactly one problem.
// Accepting a solution marks its problem solved.
type Solution struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	ProblemID    string    `json:"problemId"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Accepted     bool      `json:"accepted"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
}
