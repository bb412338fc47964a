package models

import "time"

// User is the currently authenticated actor's identity. It exists only
// while a session is active; it is held by the session service and is not
// part of the board collections.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
