// Package config loads runtime configuration for the ledger CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the ledger gRPC endpoint
//	-k string   private key file (hex); read from the terminal when empty
//	-s string   session database file
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "key_file": "wallet.hex",
//	  "session_file": "session.db",
//	  "request_timeout": "10s"
//	}
package config
