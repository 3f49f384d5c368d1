package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/ycsite/siteops/internal/adapter/provider/llm"
	weatherprovider "github.com/ycsite/siteops/internal/adapter/provider/weather"
	"github.com/ycsite/siteops/internal/adapter/shell"
	"github.com/ycsite/siteops/internal/adapter/sqlite"
	allocationrepo "github.com/ycsite/siteops/internal/adapter/sqlite/allocation"
	blueprintrepo "github.com/ycsite/siteops/internal/adapter/sqlite/blueprint"
	contactrepo "github.com/ycsite/siteops/internal/adapter/sqlite/contact"
	employeerepo "github.com/ycsite/siteops/internal/adapter/sqlite/employee"
	insightrepo "github.com/ycsite/siteops/internal/adapter/sqlite/insight"
	materialrepo "github.com/ycsite/siteops/internal/adapter/sqlite/material"
	projectrepo "github.com/ycsite/siteops/internal/adapter/sqlite/project"
	reportrepo "github.com/ycsite/siteops/internal/adapter/sqlite/report"
	settingrepo "github.com/ycsite/siteops/internal/adapter/sqlite/setting"
	sitelogrepo "github.com/ycsite/siteops/internal/adapter/sqlite/sitelog"
	taskrepo "github.com/ycsite/siteops/internal/adapter/sqlite/task"
	transactionrepo "github.com/ycsite/siteops/internal/adapter/sqlite/transaction"
	weatherrepo "github.com/ycsite/siteops/internal/adapter/sqlite/weather"
	"github.com/ycsite/siteops/internal/config"
	"github.com/ycsite/siteops/internal/dataloader"
	"github.com/ycsite/siteops/internal/domain"
	"github.com/ycsite/siteops/internal/events"
	"github.com/ycsite/siteops/internal/service/assistant"
	"github.com/ycsite/siteops/internal/service/blueprint"
	"github.com/ycsite/siteops/internal/service/contact"
	"github.com/ycsite/siteops/internal/service/dashboard"
	"github.com/ycsite/siteops/internal/service/employee"
	"github.com/ycsite/siteops/internal/service/finance"
	"github.com/ycsite/siteops/internal/service/material"
	"github.com/ycsite/siteops/internal/service/report"
	"github.com/ycsite/siteops/internal/service/setting"
	"github.com/ycsite/siteops/internal/service/task"
	"github.com/ycsite/siteops/internal/service/weather"
	"github.com/ycsite/siteops/internal/transport/rest"
)

type desktopShell interface {
	OpenFolder(ctx context.Context, name string) shell.Result
	Notify(ctx context.Context, title, body string) shell.Result
}

type weatherUpstream interface {
	Fetch(ctx context.Context, location string) (*domain.Weather, error)
}

// newWeatherUpstream returns the HTTP provider, or the static reading when
// no base URL is configured.
func newWeatherUpstream(cfg config.WeatherConfig, log *slog.Logger) weatherUpstream {
	if cfg.BaseURL == "" {
		return weatherprovider.Static{}
	}
	return weatherprovider.NewProvider(log, cfg.BaseURL, cfg.RequestTimeout)
}

// App holds the opened store and every service wired to it.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Store  *sqlite.Store
	Events *events.Notifier

	Employees  *employee.Service
	Tasks      *task.Service
	Finance    *finance.Service
	Materials  *material.Service
	Reports    *report.Service
	Dashboard  *dashboard.Service
	Assistant  *assistant.Service
	Weather    *weather.Service
	Contacts   *contact.Service
	Blueprints *blueprint.Service
	Settings   *setting.Service

	employeeRepo *employeerepo.Repo
}

// New opens the store at cfg.Store.Path and wires the services. The caller
// must Close the returned App.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := sqlite.Open(ctx, sqlite.Options{
		Path:        cfg.Store.Path,
		BusyTimeout: cfg.Store.BusyTimeout,
		Seed:        cfg.Store.Seed,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a, err := wire(store, cfg, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

func wire(store *sqlite.Store, cfg *config.Config, log *slog.Logger) (*App, error) {
	db := store.DB()
	tx := sqlite.NewTxManager(db)
	notifier := events.NewNotifier(log)

	employees := employeerepo.New(db)
	tasks := taskrepo.New(db)
	transactions := transactionrepo.New(db)
	allocations := allocationrepo.New(db)
	projects := projectrepo.New(db)
	materials := materialrepo.New(db)
	logs := sitelogrepo.New(db)
	reports := reportrepo.New(db)

	var desktop desktopShell = shell.Unavailable{}
	if cfg.Shell.Enabled {
		desktop = shell.NewLocal(log, cfg.Shell.BaseDir, cfg.Shell.Opener)
	}

	chat, err := llm.NewClient(llm.Config{BaseURL: cfg.AI.BaseURL, APIKey: cfg.AI.APIKey}, log)
	if err != nil {
		return nil, fmt.Errorf("ai client: %w", err)
	}

	a := &App{
		Config:       cfg,
		Log:          log,
		Store:        store,
		Events:       notifier,
		employeeRepo: employees,
	}

	a.Employees = employee.NewService(log, employees, tasks, tx)
	a.Tasks = task.NewService(log, tasks, employees, tx)
	a.Finance = finance.NewService(log, transactions, allocations, projects, employees, tx)
	a.Materials = material.NewService(log, materials, logs, tx, desktop, cfg.Inventory.DefaultMinQuantity)
	a.Reports = report.NewService(log, logs, tasks, transactions, reports, notifier)
	a.Dashboard = dashboard.NewService(log, a.Tasks, a.Reports, a.Employees, a.Materials, a.Finance, cfg.Dashboard.ExpectedLocations)
	a.Assistant = assistant.NewService(log, chat, insightrepo.New(db), assistant.Sources{
		Employees:    employees,
		Tasks:        tasks,
		Transactions: transactions,
		Materials:    materials,
		Projects:     projects,
	}, assistant.Config{
		Model:           cfg.AI.Model,
		PreferredModels: cfg.AI.PreferredModels,
		ProbeTimeout:    cfg.AI.ProbeTimeout,
		RequestTimeout:  cfg.AI.RequestTimeout,
		Temperature:     cfg.AI.Temperature,
		TopP:            cfg.AI.TopP,
		InsightMaxLen:   cfg.AI.InsightMaxLen,
	})
	a.Weather = weather.NewService(log, newWeatherUpstream(cfg.Weather, log), weatherrepo.New(db), weather.Config{
		DefaultLocation: cfg.Weather.DefaultLocation,
		Freshness:       cfg.Weather.Freshness,
		Retention:       cfg.Weather.Retention,
	})
	a.Contacts = contact.NewService(log, contactrepo.New(db))
	a.Blueprints = blueprint.NewService(log, blueprintrepo.New(db), tx, desktop, cfg.Drawings.Folder)
	a.Settings = setting.NewService(log, settingrepo.New(db))

	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// Handler returns the HTTP handler of the local backend.
func (a *App) Handler() http.Handler {
	health := rest.NewHealthHandler(a.Store, a.Assistant, BuildVersion())
	api := rest.NewAPIHandler(a.Weather, a.Dashboard, a.Reports, a.Assistant, a.Log)
	return rest.NewRouter(health, api, a.Config.CORS, a.Log, dataloader.Middleware(a.employeeRepo))
}

// Run is the server entry point. It loads configuration, opens the store,
// probes the assistant and serves HTTP until SIGINT or SIGTERM, then shuts
// down gracefully within the configured timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("store", cfg.Store.Path),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	a.Assistant.CheckConnection(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
