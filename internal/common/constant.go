// Package common contains shared constants and sentinel errors used across
// content ledger components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// EventsTopic is the event bus topic ledger events are published on.
const EventsTopic = "ledger.events"
