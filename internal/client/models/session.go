// Package models defines client-side data models used by the ledger CLI.
package models

import "time"

// Session is the signed-in state cached for one server endpoint.
type Session struct {
	Endpoint     string
	Address      string
	AccessToken  string
	RefreshToken string
	UpdatedAt    time.Time
}
