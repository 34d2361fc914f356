package cli

import (
	"bufio"
	"context"
	"crypto/ecdsa"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kunalsinghdadhwal/solcast/internal/client/client"
	"github.com/kunalsinghdadhwal/solcast/internal/client/config"
	"github.com/kunalsinghdadhwal/solcast/internal/client/services"
	"github.com/kunalsinghdadhwal/solcast/internal/cryptox"
	"github.com/kunalsinghdadhwal/solcast/internal/wallet"
)

var (
	errUsage          = errors.New("usage")
	errUnknownCommand = errors.New("unknown command")
)

type App struct {
	config   *config.Config
	client   client.Client
	sessions *services.SessionService
	db       *sql.DB
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	app := &App{config: c, db: db, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	apiClient, err := client.NewLedgerClient(c.ServerEndpointAddr, app.saveRotatedTokens)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app.client = apiClient
	app.sessions = services.NewSessionService(apiClient, db, c.ServerEndpointAddr)

	return app, nil
}

// saveRotatedTokens keeps the session database in step with tokens the
// client refreshed on its own.
func (a *App) saveRotatedTokens(access, refresh string) {
	if err := a.sessions.SaveTokens(context.Background(), access, refresh); err != nil {
		log.Printf("saving refreshed session: %v", err)
	}
}

func (a *App) Close() error {
	var errs []error
	if a.client != nil {
		errs = append(errs, a.client.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// Run executes the command named by args[0] with the remaining operands.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return errUsage
	}

	name, operands := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %s", errUnknownCommand, name)
	}
	if len(operands) < cmd.minArgs {
		fmt.Fprintf(a.out, "usage: %s %s\n", name, cmd.usage)
		return errUsage
	}

	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}

	if cmd.auth {
		if _, err := a.sessions.Restore(ctx); err != nil {
			if errors.Is(err, client.ErrNotLoggedIn) {
				return errors.New("not logged in; run login first")
			}
			return err
		}
	}

	return cmd.run(a, ctx, operands)
}

// loadKey reads the wallet key from the configured file, or from the
// terminal when no file is set. Sealed key files ask for their passphrase.
func (a *App) loadKey() (*ecdsa.PrivateKey, error) {
	if a.config.KeyFile == "" {
		secret, err := GetSecret("Private key (hex)", a.out)
		if err != nil {
			return nil, err
		}
		defer cryptox.Wipe(secret)
		return wallet.ParseKey(strings.TrimSpace(string(secret)))
	}

	doc, err := os.ReadFile(a.config.KeyFile)
	if err != nil {
		return nil, err
	}
	if !cryptox.IsSealed(doc) {
		return wallet.ParseKey(string(doc))
	}

	pass, err := GetSecret("Key passphrase", a.out)
	if err != nil {
		return nil, err
	}
	defer cryptox.Wipe(pass)

	plain, err := cryptox.Open(doc, pass)
	if err != nil {
		return nil, err
	}
	defer cryptox.Wipe(plain)
	return wallet.ParseKey(string(plain))
}
