package domain

// User represents a registered account. The password digest is a
// hex-encoded SHA-256 of the plaintext and never crosses the API boundary.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
