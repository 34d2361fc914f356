// Package client contains the client-side building blocks of the ledger CLI.
//
// # Overview
//
// The package provides:
//  1. The Client contract the CLI talks to: wallet sign-in, the ledger
//     operations and content URL helpers.
//  2. A gRPC implementation (GRPCClient) that injects the access token via an
//     interceptor, transparently refreshes expired tokens, reports rotated
//     tokens through a callback and maps transport failures to sentinel errors.
//  3. Session database bootstrap (InitDatabase, RunMigrations) wiring SQLite
//     and the embedded goose migrations.
//
// # Error Handling
//
// ErrUnavailable and ErrUnauthorized are matched with errors.Is. Ledger
// refusals keep their gRPC status and can be inspected with status.Code.
package client
