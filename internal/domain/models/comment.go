package models

import "time"

// ParentType identifies which collection a comment attaches to.
type ParentType string

const (
	ParentProblem  ParentType = "problem"
	ParentSolution ParentType = "solution"
)

// Valid reports whether p is one of the known parent types.
func (p ParentType) Valid() bool {
	return p == ParentProblem || p == ParentSolution
}

// Comment is a reply attached to either a problem or a solution.
// Comments are immutable after creation.
type Comment struct {
	ID           string     `json:"id"`
	Content      string     `json:"content"`
	ParentType   ParentType `json:"parentType"`
	ParentID     string     `json:"parentId"`
	AuthorID     string     `json:"authorId"`
	AuthorName   string     `json:"authorName"`
	AuthorAvatar string     `json:"authorAvatar,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
