// Package cli implements the eventcart terminal client on top of the SDK.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aussiebroadwan/eventcart/pkg/authstate"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/credstore"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

// Version is reported by the version command.
const Version = "v0.1.0"

// ErrUsage marks errors caused by bad arguments. main exits with status 2.
var ErrUsage = errors.New("usage error")

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// App runs one CLI invocation.
type App struct {
	cfg    Config
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
	logger *slog.Logger

	session *cartsdk.Session
	auth    *authstate.Provider

	commands map[string]command
}

func New(cfg Config, store credstore.Store, in io.Reader, out, errOut io.Writer) *App {
	logger := slogx.New(slogx.Config{
		Service: "eventcart-cli",
		Version: Version,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  errOut,
	})

	opts := []cartsdk.Option{cartsdk.WithLogger(logger)}
	if cfg.Timeout > 0 {
		opts = append(opts, cartsdk.WithTimeout(cfg.Timeout))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, cartsdk.WithRateLimit(cfg.RateLimit, max(1, int(cfg.RateLimit))))
	}

	session := cartsdk.NewSDKClient(cfg.BaseURL, opts...).NewSession(store)

	a := &App{
		cfg:     cfg,
		out:     out,
		errOut:  errOut,
		in:      bufio.NewReader(in),
		logger:  logger,
		session: session,
		auth:    authstate.NewProvider(session, logger),
	}
	session.OnSessionExpired(func(context.Context, error) {
		fmt.Fprintln(a.errOut, "Your session has expired. Run `eventcart login` to sign in again.")
	})

	a.commands = map[string]command{
		"register": {"register -email E -first F -last L [-phone P]", "create an account and sign in", a.cmdRegister},
		"login":    {"login -email E", "sign in; the password is read from stdin or EVENTCART_PASSWORD", a.cmdLogin},
		"logout":   {"logout", "sign out and forget the stored session", a.cmdLogout},
		"whoami":   {"whoami", "show the signed-in user", a.cmdWhoami},
		"status":   {"status", "show session details", a.cmdStatus},
		"events":   {"events [-q TEXT] [-category C] [-city C] [-limit N] [-offset N]", "browse the catalogue", a.cmdEvents},
		"event":    {"event ID", "show one event and its package items", a.cmdEvent},
		"cart":     {"cart [add EVENT_ID [-qty N] [-item ID=QTY ...] | update ITEM_ID QTY | remove ITEM_ID | clear]", "show or change the cart", a.cmdCart},
		"checkout": {"checkout -name N -line1 L -city C -postal P -country CC [-state S] [-line2 L] [-payment card|paypal|invoice]", "place an order for the cart", a.cmdCheckout},
		"orders":   {"orders [ID]", "list orders or show one", a.cmdOrders},
		"wishlist": {"wishlist [add EVENT_ID | remove EVENT_ID]", "show or change the wishlist", a.cmdWishlist},
		"admin":    {"admin users | orders | analytics | status ORDER_ID STATUS", "admin operations", a.cmdAdmin},
		"version":  {"version", "print the client version", a.cmdVersion},
	}
	return a
}

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	a.logger.Debug("running command", "command", args[0], "base_url", a.cfg.BaseURL)
	return cmd.run(ctx, args[1:])
}

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.errOut, "Usage: eventcart <command> [flags]")
	fmt.Fprintln(a.errOut)
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %-9s %s\n", name, a.commands[name].help)
	}
	fmt.Fprintln(a.errOut)
	fmt.Fprintln(a.errOut, "Environment: EVENTCART_URL, EVENTCART_STORE, EVENTCART_STORE_PATH, EVENTCART_PASSPHRASE")
}

// flags returns a FlagSet that reports errors instead of exiting.
func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.Usage = func() {
		fmt.Fprintf(a.errOut, "Usage: eventcart %s\n", a.commands[name].usage)
		fs.PrintDefaults()
	}
	return fs
}

func (a *App) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// restore loads the stored session. Commands that need a signed-in user fail
// early instead of sending an anonymous request.
func (a *App) restore(ctx context.Context) error {
	user, err := a.session.Load(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("not signed in; run `eventcart login` first")
	}
	return nil
}

// readPassword takes EVENTCART_PASSWORD or the first line of stdin.
func (a *App) readPassword(env string) (string, error) {
	if env != "" {
		return env, nil
	}
	fmt.Fprint(a.errOut, "Password: ")
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", usageErr("password is required")
	}
	return pw, nil
}
