package config

import "time"

// Config holds runtime settings for the ledger CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the ledger gRPC endpoint.
//   - KeyFile: file holding the hex secp256k1 private key; empty means the
//     key is read from the terminal.
//   - SessionFile: SQLite file caching tokens between invocations.
//   - RequestTimeout: deadline applied to each command.
type Config struct {
	ServerEndpointAddr string
	KeyFile            string
	SessionFile        string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.KeyFile = ""
	c.SessionFile = "session.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
