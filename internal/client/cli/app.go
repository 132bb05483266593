package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/posclient/internal/client/client"
	"github.com/dmitrijs2005/posclient/internal/client/config"
	"github.com/dmitrijs2005/posclient/internal/client/metrics"
	"github.com/dmitrijs2005/posclient/internal/client/models"
	"github.com/dmitrijs2005/posclient/internal/client/notify"
	"github.com/dmitrijs2005/posclient/internal/client/services"
	"github.com/dmitrijs2005/posclient/internal/client/tokens"
	"github.com/dmitrijs2005/posclient/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type Mode string

const (
	ModeOnline    Mode = "online"
	ModeLoggedOut Mode = "logged out"
)

// sessionIface is what the commands need from services.Session.
type sessionIface interface {
	IsAuthenticated() bool
	User() *models.User
	VerifyAuth(ctx context.Context) bool
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	PurgeAuth(ctx context.Context) error
	StoredUser(ctx context.Context) (*models.User, error)
}

// resourceIface is what the CRUD commands need from services.ResourceService.
type resourceIface interface {
	Get(ctx context.Context, resource string) (*client.Envelope, error)
	Post(ctx context.Context, resource string, body json.RawMessage) (*client.Envelope, error)
	Put(ctx context.Context, resource string, body json.RawMessage) (*client.Envelope, error)
	Update(ctx context.Context, resource, slug string, body json.RawMessage) (*client.Envelope, error)
	Delete(ctx context.Context, resource string) (*client.Envelope, error)
}

type App struct {
	config    *config.Config
	db        *sql.DB
	logger    logging.Logger
	notifier  notify.Notifier
	session   sessionIface
	resources resourceIface
	metrics   *http.Server
	Mode      Mode
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp opens local storage and wires the HTTP client, the token store and
// the session together. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(os.Stderr, c.DebugMode)

	db, err := client.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	console := notify.NewConsole(os.Stdout, notify.NewCatalog())
	store := tokens.NewStore(db, logger)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	api, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithLogger(logger),
		client.WithDebug(c.DebugMode),
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RateLimit),
		client.WithTokenSource(store),
		client.WithMetrics(collector),
		client.WithNotifier(console),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session := services.NewSession(ctx, api, store,
		services.WithLogger(logger),
		services.WithNotifier(console),
	)
	api.OnUnauthorized(session.HandleUnauthorized)

	a := &App{
		config:    c,
		db:        db,
		logger:    logger,
		notifier:  console,
		session:   session,
		resources: services.NewResourceService(api),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	if c.MetricsAddr != "" {
		a.metrics = &http.Server{
			Addr:              c.MetricsAddr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return a, nil
}

// Run verifies the stored session and then serves the REPL on stdin until
// the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close(context.Background())

	if a.metrics != nil {
		go a.serveMetrics(ctx)
	}

	printlnFn("POS client (type 'help' for commands)")
	if a.session.VerifyAuth(ctx) {
		if u := a.session.User(); u != nil {
			a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelSuccess, Key: notify.KeyLoginSuccess, Args: []any{u.FullName()}})
		}
	}
	a.syncMode(ctx)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) serveMetrics(ctx context.Context) {
	a.logger.Info(ctx, "serving metrics", "addr", a.metrics.Addr)
	if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error(ctx, "metrics server failed", "error", err)
	}
}

// Close stops the metrics server and closes local storage.
func (a *App) Close(ctx context.Context) error {
	if a.metrics != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := a.metrics.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn(ctx, "metrics server shutdown", "error", err)
		}
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

// syncMode follows the session, which may have been purged by a 401.
func (a *App) syncMode(ctx context.Context) {
	if a.session.IsAuthenticated() {
		a.setMode(ctx, ModeOnline)
	} else {
		a.setMode(ctx, ModeLoggedOut)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		if u := a.session.User(); u != nil && u.Name != "" {
			s = u.Name + " "
		}
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
