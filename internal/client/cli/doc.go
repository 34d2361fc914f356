// Package cli provides the one-shot command-line client of the content ledger.
//
// Each invocation runs a single command, e.g.
//
//	cli keygen wallet.json
//	cli -k wallet.json login
//	cli publish-paid content/2024/05/01/0c1f... 2500
//	cli access 3
//	cli withdraw
//
// login signs a server-issued challenge with the wallet key and caches the
// issued tokens in the session database; later commands reuse (and, when the
// access token expires, transparently rotate) them. The command table lives
// in commands.go. Key files hold either a hex key or a passphrase-sealed
// keystore written by keygen.
package cli
