package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kunalsinghdadhwal/solcast/internal/client/cli"
	"github.com/kunalsinghdadhwal/solcast/internal/client/config"
	"github.com/kunalsinghdadhwal/solcast/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	err = app.Run(ctx, flagx.Positional(os.Args[1:], config.ValueFlags))
	if cerr := app.Close(); cerr != nil {
		log.Printf("close: %v", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

}
