package models

import "time"

// RefreshToken is a server-stored, single-use token that mints a new access
// token for Address.
type RefreshToken struct {
	Address   string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
