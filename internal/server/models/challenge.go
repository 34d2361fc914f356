package models

import "time"

// Challenge is the message a wallet must sign to prove control of Address.
type Challenge struct {
	Address string
	Message string
	Expires time.Time
}
