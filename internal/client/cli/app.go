package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/booky/internal/client/client"
	"github.com/dmitrijs2005/booky/internal/client/config"
	"github.com/dmitrijs2005/booky/internal/client/events"
	"github.com/dmitrijs2005/booky/internal/client/gate"
	"github.com/dmitrijs2005/booky/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/booky/internal/client/services"
	"github.com/dmitrijs2005/booky/internal/client/session"
	"github.com/dmitrijs2005/booky/internal/filex"
	"github.com/dmitrijs2005/booky/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the application root: it owns the single session of the process
// and hands it to the gateway (as the credential source) and to the gate.
type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	session     *session.Store
	authService services.AuthService
	gate        *gate.Gate
	api         *client.API
	screens     map[string]screen
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens the credential store named by c.StoragePath (memory only when
// empty) and builds the console on stdin/stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	var (
		db   *sql.DB
		repo metadata.Repository
	)

	if c.StoragePath != "" {
		if _, err := filex.EnsureParentDir(c.StoragePath); err != nil {
			return nil, err
		}
		var err error
		db, err = client.InitDatabase(ctx, c.StoragePath)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", c.StoragePath, "error", err)
			return nil, err
		}
		repo = metadata.NewSQLiteRepository(db)
	} else {
		repo = metadata.NewMemoryRepository()
	}

	a := newApp(c, log, repo, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, repo metadata.Repository, in io.Reader, out io.Writer) *App {
	bus := events.NewBus()
	store := session.NewStore(repo, session.WithBus(bus), session.WithLogger(log))

	gw := client.NewGateway(c.ServerBaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)
	api := client.New(gw)

	a := &App{
		config:      c,
		log:         log,
		session:     store,
		authService: services.NewAuthService(api.Auth, store, log),
		gate:        gate.New(store),
		api:         api,
		reader:      bufio.NewReader(in),
		out:         out,
	}
	a.screens = a.buildScreens(bus)
	return a
}

// Run restores the previous session and starts the REPL. It returns when
// the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.Hydrate(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}

	if a.isLoggedIn(ctx) {
		err := a.authService.Validate(ctx)
		switch {
		case err == nil:
		case errors.Is(err, client.ErrUnauthorized):
			fmt.Fprintln(a.out, "Your session is no longer valid, please sign in again")
		default:
			a.log.Warn(ctx, "could not validate session", "error", err)
		}
	}

	fmt.Fprintln(a.out, "Welcome to booky console (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus(ctx), a.reader, a.out)
	return nil
}

// Close releases the synchronizers and the credential store.
func (a *App) Close() {
	for _, s := range a.screens {
		s.close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "failed to close database", "error", err)
		}
		a.db = nil
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.gate.CanEnterProtected(ctx)
}

func (a *App) getStatus(ctx context.Context) func() string {
	return func() string {
		if u := a.authService.CurrentUser(ctx); u != nil {
			return "(" + u.Subject + ")"
		}
		return "(signed out)"
	}
}
