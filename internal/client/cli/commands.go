package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/api"
	"github.com/kunalsinghdadhwal/solcast/internal/cryptox"
	"github.com/kunalsinghdadhwal/solcast/internal/filex"
	"github.com/kunalsinghdadhwal/solcast/internal/netx"
	"github.com/kunalsinghdadhwal/solcast/internal/wallet"
)

type command struct {
	usage   string
	summary string
	minArgs int
	// auth commands restore the cached session before running.
	auth bool
	run  func(a *App, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"keygen":         {usage: "<key-file>", summary: "create a passphrase-sealed wallet key", minArgs: 1, run: (*App).keygen},
		"login":          {usage: "", summary: "sign in with the wallet key", run: (*App).login},
		"logout":         {usage: "", summary: "forget the cached session", run: (*App).logout},
		"ping":           {usage: "", summary: "check the server is reachable", run: (*App).ping},
		"publish":        {usage: "<content-ref>", summary: "publish free content", minArgs: 1, auth: true, run: (*App).publish},
		"publish-paid":   {usage: "<content-ref> <price>", summary: "publish paid content", minArgs: 2, auth: true, run: (*App).publishPaid},
		"access":         {usage: "<post-id> [payment]", summary: "access a post, paying its price when needed", minArgs: 1, auth: true, run: (*App).access},
		"view":           {usage: "<post-id>", summary: "view free or own content", minArgs: 1, auth: true, run: (*App).view},
		"info":           {usage: "[post-id]", summary: "show ledger or post details", run: (*App).info},
		"posts":          {usage: "[address]", summary: "list posts of an author", run: (*App).posts},
		"balance":        {usage: "[address]", summary: "show a creator balance", run: (*App).balance},
		"deposit":        {usage: "", summary: "show the funds left for paid content", auth: true, run: (*App).deposit},
		"withdraw":       {usage: "", summary: "withdraw the creator balance", auth: true, run: (*App).withdraw},
		"withdraw-fees":  {usage: "", summary: "withdraw platform fees (owner)", auth: true, run: (*App).withdrawFees},
		"transfer-owner": {usage: "<address>", summary: "transfer ledger ownership (owner)", minArgs: 1, auth: true, run: (*App).transferOwner},
		"renounce":       {usage: "", summary: "renounce ledger ownership for good (owner)", auth: true, run: (*App).renounce},
		"upload":         {usage: "<file> [price]", summary: "upload a file and publish it", minArgs: 1, auth: true, run: (*App).upload},
		"download":       {usage: "<post-id> <file>", summary: "download the content of a readable post", minArgs: 2, auth: true, run: (*App).download},
		"events":         {usage: "[since-seq] [limit]", summary: "list ledger events", run: (*App).events},
	}
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "usage: cli [-a addr] [-k keyfile] [-s session.db] [-t seconds] <command> [args]")
	fmt.Fprintln(a.out, "commands:")
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		c := commands[name]
		fmt.Fprintf(a.out, "  %-15s %-22s %s\n", name, c.usage, c.summary)
	}
}

func parseUint(what, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return v, nil
}

// addressArg returns the address in args[0], or the signed-in address.
func (a *App) addressArg(ctx context.Context, args []string) (common.Address, error) {
	if len(args) > 0 {
		return wallet.ParseAddress(args[0])
	}
	addr, err := a.sessions.Restore(ctx)
	if err != nil {
		return common.Address{}, errors.New("address required when not logged in")
	}
	return addr, nil
}

func (a *App) printEvents(events []*api.Event) {
	for _, e := range events {
		fmt.Fprintf(a.out, "#%d %s", e.Seq, e.Kind)
		switch e.Kind {
		case "ContentPublished", "ContentAccessed", "CreatorPaid":
			fmt.Fprintf(a.out, " post=%d", e.PostID)
		}
		fmt.Fprintf(a.out, " account=%s", e.Account)
		if e.Counterparty != "" {
			fmt.Fprintf(a.out, " to=%s", e.Counterparty)
		}
		if e.ContentType != "" {
			fmt.Fprintf(a.out, " type=%s", e.ContentType)
		}
		if e.Amount != 0 {
			fmt.Fprintf(a.out, " amount=%d", e.Amount)
		}
		fmt.Fprintln(a.out)
	}
}

func (a *App) login(ctx context.Context, _ []string) error {
	key, err := a.loadKey()
	if err != nil {
		return err
	}
	addr, err := a.sessions.Login(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", addr.Hex())
	return nil
}

func (a *App) keygen(_ context.Context, args []string) error {
	pass, err := GetSecret("New passphrase", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pass)
	if len(pass) == 0 {
		return errors.New("passphrase must not be empty")
	}

	again, err := GetSecret("Repeat passphrase", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(again)
	if string(pass) != string(again) {
		return errors.New("passphrases do not match")
	}

	key, err := wallet.GenerateKey()
	if err != nil {
		return err
	}
	secret := []byte(wallet.EncodeKey(key))
	defer cryptox.Wipe(secret)

	doc, err := cryptox.Seal(secret, pass)
	if err != nil {
		return err
	}
	if err := filex.WriteNew(args[0], doc); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s for %s\n", args[0], wallet.Address(key).Hex())
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) ping(ctx context.Context, _ []string) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) publish(ctx context.Context, args []string) error {
	resp, err := a.client.PublishFreeContent(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "published post %d\n", resp.PostID)
	a.printEvents(resp.Events)
	return nil
}

func (a *App) publishPaid(ctx context.Context, args []string) error {
	price, err := parseUint("price", args[1])
	if err != nil {
		return err
	}
	resp, err := a.client.PublishPaidContent(ctx, args[0], price)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "published post %d\n", resp.PostID)
	a.printEvents(resp.Events)
	return nil
}

func (a *App) access(ctx context.Context, args []string) error {
	id, err := parseUint("post id", args[0])
	if err != nil {
		return err
	}

	var payment uint64
	if len(args) > 1 {
		if payment, err = parseUint("payment", args[1]); err != nil {
			return err
		}
	} else {
		post, err := a.client.GetPostInfo(ctx, id)
		if err != nil {
			return err
		}
		if post.ContentType == "paid" && post.Author != a.sessions.Address().Hex() {
			payment = post.Price
		}
	}

	resp, err := a.client.AccessContent(ctx, id, payment)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Content)
	a.printEvents(resp.Events)
	return nil
}

func (a *App) view(ctx context.Context, args []string) error {
	id, err := parseUint("post id", args[0])
	if err != nil {
		return err
	}
	content, err := a.client.ViewContent(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, content)
	return nil
}

func (a *App) info(ctx context.Context, args []string) error {
	if len(args) > 0 {
		id, err := parseUint("post id", args[0])
		if err != nil {
			return err
		}
		p, err := a.client.GetPostInfo(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "post %d\n  author: %s\n  type: %s\n  price: %d\n  published: %d\n",
			p.PostID, p.Author, p.ContentType, p.Price, p.Timestamp)
		return nil
	}

	li, err := a.client.GetLedgerInfo(ctx)
	if err != nil {
		return err
	}
	owner := li.Owner
	if li.Renounced {
		owner = "(renounced)"
	}
	fmt.Fprintf(a.out, "owner: %s\nplatform fee: %d%%\npayment unit: %s\nposts: %d\nplatform balance: %d\n",
		owner, li.PlatformFeePercent, li.PaymentUnit, li.NextPostID, li.PlatformBalance)
	return nil
}

func (a *App) posts(ctx context.Context, args []string) error {
	addr, err := a.addressArg(ctx, args)
	if err != nil {
		return err
	}
	ids, err := a.client.GetUserPosts(ctx, addr)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(a.out, id)
	}
	return nil
}

func (a *App) balance(ctx context.Context, args []string) error {
	addr, err := a.addressArg(ctx, args)
	if err != nil {
		return err
	}
	amount, err := a.client.GetCreatorBalance(ctx, addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %d\n", addr.Hex(), amount)
	return nil
}

func (a *App) deposit(ctx context.Context, _ []string) error {
	amount, err := a.client.GetDeposit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deposit: %d\n", amount)
	return nil
}

func (a *App) withdraw(ctx context.Context, _ []string) error {
	resp, err := a.client.WithdrawCreatorBalance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "withdrew %d\n", resp.Amount)
	a.printEvents(resp.Events)
	return nil
}

func (a *App) withdrawFees(ctx context.Context, _ []string) error {
	resp, err := a.client.WithdrawPlatformFees(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "withdrew %d in platform fees\n", resp.Amount)
	a.printEvents(resp.Events)
	return nil
}

func (a *App) transferOwner(ctx context.Context, args []string) error {
	to, err := wallet.ParseAddress(args[0])
	if err != nil {
		return err
	}
	resp, err := a.client.TransferOwnership(ctx, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "owner is now %s\n", resp.Owner)
	a.printEvents(resp.Events)
	return nil
}

func (a *App) renounce(ctx context.Context, _ []string) error {
	answer, err := GetSimpleText(a.reader, "Renouncing cannot be undone and locks platform fees forever. Type RENOUNCE to confirm.", a.out)
	if err != nil {
		return err
	}
	if answer != "RENOUNCE" {
		fmt.Fprintln(a.out, "aborted")
		return nil
	}
	resp, err := a.client.RenounceOwnership(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ownership renounced")
	a.printEvents(resp.Events)
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	var price uint64
	if len(args) > 1 {
		var err error
		if price, err = parseUint("price", args[1]); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	key, url, err := a.client.RequestUploadURL(ctx)
	if err != nil {
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, url, data); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "uploaded %s\n", key)

	if price == 0 {
		return a.publish(ctx, []string{key})
	}
	return a.publishPaid(ctx, []string{key, strconv.FormatUint(price, 10)})
}

func (a *App) download(ctx context.Context, args []string) error {
	id, err := parseUint("post id", args[0])
	if err != nil {
		return err
	}
	url, err := a.client.GetContentURL(ctx, id)
	if err != nil {
		return err
	}
	data, err := netx.DownloadFromPresignedURL(ctx, url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], data, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %d bytes to %s\n", len(data), args[1])
	return nil
}

func (a *App) events(ctx context.Context, args []string) error {
	var since uint64
	var limit uint64
	var err error
	if len(args) > 0 {
		if since, err = parseUint("sequence", args[0]); err != nil {
			return err
		}
	}
	if len(args) > 1 {
		if limit, err = parseUint("limit", args[1]); err != nil {
			return err
		}
	}
	events, err := a.client.ListEvents(ctx, since, uint32(min(limit, 1<<31)))
	if err != nil {
		return err
	}
	a.printEvents(events)
	return nil
}
