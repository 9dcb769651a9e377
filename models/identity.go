package models

// Identity is the acting user as resolved from the bearer token. A nil
// *Identity means the request is anonymous.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}
