package domain

import "time"

// Session represents one authenticated interaction sequence, stored in
// Redis and referenced from the bearer token. It replaces process-global
// login state: every protected call carries the session explicitly.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
