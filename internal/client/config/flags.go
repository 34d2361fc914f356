package config

import (
	"flag"
	"os"
	"time"

	"github.com/kunalsinghdadhwal/solcast/internal/flagx"
)

// ValueFlags lists the flags of this package that consume the next argument.
// The CLI uses it to tell flag values from command operands.
var ValueFlags = []string{"-a", "-k", "-s", "-t", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the ledger server (default from Config)
//	-k string   private key file
//	-s string   session database file
//	-t int      request timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.KeyFile, "k", cfg.KeyFile, "file with the hex private key")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "session database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
