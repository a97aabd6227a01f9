package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"historyatlas/src/client/api"
	"historyatlas/src/client/auth"
	"historyatlas/src/client/cart"
	"historyatlas/src/client/storage"

	goflags "github.com/jessevdk/go-flags"
)

var errUnreachable = errors.New("could not reach the server, please try again")

// StoreOpener abre o armazenamento local no diretório de estado.
type StoreOpener func(dir string) (storage.KeyValueStore, io.Closer, error)

func openBadgerStore(dir string) (storage.KeyValueStore, io.Closer, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve state dir: %w", err)
		}
		dir = filepath.Join(home, ".historyatlas")
	}

	store, err := storage.OpenBadgerStore(dir)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}

type Runner struct {
	out       io.Writer
	logger    *slog.Logger
	openStore StoreOpener

	ctx     context.Context
	globals GlobalFlags
}

func NewRunner(out io.Writer, errOut io.Writer, openStore StoreOpener) *Runner {
	if openStore == nil {
		openStore = openBadgerStore
	}
	return &Runner{
		out:       out,
		logger:    slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelWarn})),
		openStore: openStore,
	}
}

func (r *Runner) buildParser() *goflags.Parser {
	parser := goflags.NewParser(&r.globals, goflags.HelpFlag|goflags.PassDoubleDash)
	parser.Name = "historyctl"
	parser.LongDescription = "Browse the history atlas and shop the store from the terminal."

	parser.AddCommand("timeline", "List the history timeline", "List rulers, places, battles and people sorted by year.", &TimelineCommand{runner: r})
	parser.AddCommand("detail", "Show one entry", "Show the facts of a single timeline entry.", &DetailCommand{runner: r})
	parser.AddCommand("map", "Show the map at a year", "Show the markers of a layer visible at the scrub year.", &MapCommand{runner: r})
	parser.AddCommand("products", "List store products", "List store products, optionally filtered.", &ProductsCommand{runner: r})

	cartCommand, _ := parser.AddCommand("cart", "Manage the cart", "Add, remove and change cart lines.", &struct{}{})
	cartCommand.AddCommand("add", "Add a product", "Add a product, or one more unit of it.", &CartAddCommand{runner: r})
	cartCommand.AddCommand("remove", "Remove a product", "Remove a product line from the cart.", &CartRemoveCommand{runner: r})
	cartCommand.AddCommand("qty", "Change a quantity", "Change the quantity of a cart line.", &CartQuantityCommand{runner: r})
	cartCommand.AddCommand("show", "Show the cart", "Show cart lines and totals.", &CartShowCommand{runner: r})

	parser.AddCommand("checkout", "Place an order", "Place an order with the cart contents.", &CheckoutCommand{runner: r})
	parser.AddCommand("signup", "Create an account", "Create an account and log in.", &SignupCommand{runner: r})
	parser.AddCommand("login", "Log in", "Log in and keep the session locally.", &LoginCommand{runner: r})
	parser.AddCommand("logout", "Log out", "Forget the local session.", &LogoutCommand{runner: r})
	parser.AddCommand("whoami", "Show the current user", "Show the profile of the logged in user.", &WhoamiCommand{runner: r})
	parser.AddCommand("orders", "List your orders", "List the orders of the logged in user, newest first.", &OrdersCommand{runner: r})

	return parser
}

// Run interpreta args e executa o subcomando escolhido.
func (r *Runner) Run(ctx context.Context, args []string) error {
	r.ctx = ctx

	parser := r.buildParser()
	_, err := parser.ParseArgs(args)
	if err == nil {
		return nil
	}

	var flagsErr *goflags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
		fmt.Fprintln(r.out, flagsErr.Message)
		return nil
	}

	// Falha de rede vira mensagem genérica; a causa fica no log.
	if errors.Is(err, api.ErrNetwork) {
		if r.globals.Verbose {
			r.logger.Error("request failed", "error", err)
		}
		return errUnreachable
	}
	return err
}

// app é o estado montado por execução: cliente, sessão e carrinho sobre o mesmo store.
type app struct {
	client  *api.Client
	session *auth.Session
	cart    *cart.Cart
}

func (r *Runner) withApp(fn func(a *app) error) error {
	store, closer, err := r.openStore(r.globals.StateDir)
	if err != nil {
		return err
	}
	defer func() {
		if closer != nil {
			if err := closer.Close(); err != nil {
				r.logger.Warn("failed to close state store", "error", err)
			}
		}
	}()

	client := api.NewClient(r.globals.APIURL)

	session, err := auth.LoadSession(client, store)
	if err != nil {
		return err
	}

	shoppingCart, err := cart.Load(store)
	if err != nil {
		return err
	}

	return fn(&app{client: client, session: session, cart: shoppingCart})
}
