package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	"fitx/internal/httpapi"
	activityinadapter "fitx/internal/modules/activity/adapter/in"
	activityoutadapter "fitx/internal/modules/activity/adapter/out"
	activityin "fitx/internal/modules/activity/port/in"
	activityout "fitx/internal/modules/activity/port/out"
	activityservice "fitx/internal/modules/activity/service"
	activityusecase "fitx/internal/modules/activity/usecase"
	plugininadapter "fitx/internal/modules/plugin/adapter/in"
	pluginoutadapter "fitx/internal/modules/plugin/adapter/out"
	pluginin "fitx/internal/modules/plugin/port/in"
	pluginservice "fitx/internal/modules/plugin/service"
	pluginusecase "fitx/internal/modules/plugin/usecase"
	progressinadapter "fitx/internal/modules/progress/adapter/in"
	progressoutadapter "fitx/internal/modules/progress/adapter/out"
	progressin "fitx/internal/modules/progress/port/in"
	progressout "fitx/internal/modules/progress/port/out"
	progressservice "fitx/internal/modules/progress/service"
	progressusecase "fitx/internal/modules/progress/usecase"
	"fitx/internal/platform/clock"
	"fitx/internal/platform/config"
	"fitx/internal/platform/id"
	"fitx/internal/platform/logging"
	"fitx/internal/platform/retry"
	"fitx/internal/scheduler"
	"fitx/internal/telegrambot"
	uiapp "fitx/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger hclog.Logger

	Activity activityin.Usecase
	Progress progressin.Usecase
	Plugins  pluginin.Usecase

	ActivityCLI activityinadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler
	PluginCLI   plugininadapter.CLIHandler

	store activityout.EventStore
}

func New(ctx context.Context, cfg config.Config, logger hclog.Logger) (*App, error) {
	logger = logging.OrDiscard(logger)
	clk := clock.SystemClock{}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("event store opened", "store", cfg.Store)

	activityUC := activityusecase.NewInteractor(
		activityservice.NewRecorder(clk),
		store,
		activityoutadapter.NewXLSXWorkbookWriter(logger.Named("workbook")),
		retry.Default(),
		logger.Named("activity"),
	)

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.DataDir),
		pluginoutadapter.NewGRPCHost(logger.Named("plugin")),
		logger.Named("plugin"),
	))

	var insights progressout.InsightProvider
	if cfg.PluginsEnabled {
		insights = progressoutadapter.NewPluginInsightProvider(pluginUC, logger.Named("plugin"))
	}
	progressUC := progressusecase.NewInteractor(progressservice.NewSummarizer(
		clk,
		id.UUID{},
		progressoutadapter.NewActivityHistorySource(activityUC),
		insights,
		progressoutadapter.NewVaultReportStore(cfg.DataDir),
		logger.Named("progress"),
	))

	return &App{
		Config:      cfg,
		Logger:      logger,
		Activity:    activityUC,
		Progress:    progressUC,
		Plugins:     pluginUC,
		ActivityCLI: activityinadapter.NewCLIHandler(activityUC, cfg.UserID),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC, cfg.UserID),
		PluginCLI:   plugininadapter.NewCLIHandler(pluginUC),
		store:       store,
	}, nil
}

func openStore(ctx context.Context, cfg config.Config) (activityout.EventStore, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return activityoutadapter.NewMemoryEventStore(), nil
	case config.StoreSQLite:
		store, err := activityoutadapter.NewSQLiteEventStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case config.StorePostgres:
		store, err := activityoutadapter.NewPostgresEventStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store %q", cfg.Store)
	}
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) HTTPServer() *httpapi.Server {
	return httpapi.NewServer(a.Activity, a.Progress, a.Config.UserID, a.Logger.Named("http"))
}

// Scheduler returns the report job registered on the configured schedule.
func (a *App) Scheduler(ctx context.Context) (*scheduler.ReportScheduler, error) {
	s := scheduler.NewReportScheduler(a.Progress, a.Config.UserID, a.Config.ReportWindowDays, a.Logger.Named("scheduler"))
	if err := s.Schedule(ctx, a.Config.ReportSchedule); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *App) Bot() (*telegrambot.Bot, error) {
	if a.Config.TelegramToken == "" {
		return nil, fmt.Errorf("telegram bot requires FITX_TELEGRAM_TOKEN")
	}
	api, err := telegrambot.Connect(a.Config.TelegramToken)
	if err != nil {
		return nil, err
	}
	return telegrambot.New(api, a.Activity, a.Progress, a.Logger.Named("bot")), nil
}

// ExportDir is where workbook exports land unless a path is given.
func (a *App) ExportDir() string {
	return filepath.Join(a.Config.DataDir, "exports")
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ActivityCLI.UserID(), app.ExportDir(), app.ActivityCLI, app.ProgressCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
