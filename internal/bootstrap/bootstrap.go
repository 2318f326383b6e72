package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	archiveinadapter "ghostnote/internal/modules/archive/adapter/in"
	archiveoutadapter "ghostnote/internal/modules/archive/adapter/out"
	archivein "ghostnote/internal/modules/archive/port/in"
	archiveservice "ghostnote/internal/modules/archive/service"
	archiveusecase "ghostnote/internal/modules/archive/usecase"
	auditinadapter "ghostnote/internal/modules/audit/adapter/in"
	auditoutadapter "ghostnote/internal/modules/audit/adapter/out"
	auditin "ghostnote/internal/modules/audit/port/in"
	auditout "ghostnote/internal/modules/audit/port/out"
	auditservice "ghostnote/internal/modules/audit/service"
	auditusecase "ghostnote/internal/modules/audit/usecase"
	draftinadapter "ghostnote/internal/modules/draft/adapter/in"
	draftoutadapter "ghostnote/internal/modules/draft/adapter/out"
	draftin "ghostnote/internal/modules/draft/port/in"
	draftservice "ghostnote/internal/modules/draft/service"
	draftusecase "ghostnote/internal/modules/draft/usecase"
	strategyinadapter "ghostnote/internal/modules/strategy/adapter/in"
	strategyoutadapter "ghostnote/internal/modules/strategy/adapter/out"
	strategyin "ghostnote/internal/modules/strategy/port/in"
	strategyout "ghostnote/internal/modules/strategy/port/out"
	strategyservice "ghostnote/internal/modules/strategy/service"
	strategyusecase "ghostnote/internal/modules/strategy/usecase"
	wagerinadapter "ghostnote/internal/modules/wager/adapter/in"
	wageroutadapter "ghostnote/internal/modules/wager/adapter/out"
	wagerin "ghostnote/internal/modules/wager/port/in"
	wagerservice "ghostnote/internal/modules/wager/service"
	wagerusecase "ghostnote/internal/modules/wager/usecase"
	"ghostnote/internal/platform/clock"
	"ghostnote/internal/platform/config"
	"ghostnote/internal/platform/events"
	"ghostnote/internal/platform/id"
	"ghostnote/internal/platform/kv"
	"ghostnote/internal/platform/llm"
	"ghostnote/internal/platform/tx"
	uiapp "ghostnote/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger *zap.Logger

	Drafts   draftin.Usecase
	Wagers   wagerin.Usecase
	Audits   auditin.Usecase
	Archive  archivein.Usecase
	Strategy strategyin.Usecase

	DraftCLI    draftinadapter.CLIHandler
	WagerCLI    wagerinadapter.CLIHandler
	AuditCLI    auditinadapter.CLIHandler
	ArchiveCLI  archiveinadapter.CLIHandler
	StrategyCLI strategyinadapter.CLIHandler

	store     kv.Store
	publisher events.Publisher
}

// New wires every module against one store, one publisher and one
// in-process write lock shared by the draft and wager collections.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	publisher, err := openPublisher(cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	var model *llm.Gemini
	if cfg.GeminiAPIKey != "" {
		model, err = llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			_ = publisher.Close()
			_ = store.Close()
			return nil, fmt.Errorf("new gemini client: %w", err)
		}
	}

	txm := &tx.MutexManager{}

	draftUC := draftusecase.NewInteractor(draftservice.NewDraftService(
		clk,
		draftoutadapter.NewKVDraftStore(store),
		txm,
		logger.Named("draft"),
	))

	wagerUC := wagerusecase.NewInteractor(wagerservice.NewWagerService(
		clk,
		wageroutadapter.NewKVWagerStore(store),
		txm,
		publisher,
		logger.Named("wager"),
	))

	resolver, err := newResolver(cfg, model)
	if err != nil {
		_ = publisher.Close()
		_ = store.Close()
		return nil, err
	}
	auditUC := auditusecase.NewInteractor(auditservice.NewAuditService(
		auditoutadapter.NewWagerLedger(wagerUC),
		resolver,
		logger.Named("audit"),
	))

	archiveUC := archiveusecase.NewInteractor(archiveservice.NewArchiveService(
		clk,
		id.ArchiveSlug{Clock: clk},
		archiveoutadapter.NewKVEntryStore(store),
		archiveoutadapter.NewMarkdownBriefWriter(),
		archiveoutadapter.NewGlamourRenderer("dark"),
		publisher,
		logger.Named("archive"),
	))

	var generator strategyout.Generator
	if model != nil {
		generator = strategyoutadapter.NewGeminiGenerator(model)
	}
	strategyUC := strategyusecase.NewInteractor(strategyservice.NewStrategyService(
		clk,
		id.UUID{},
		generator,
		logger.Named("strategy"),
	))

	return &App{
		Config:      cfg,
		Logger:      logger,
		Drafts:      draftUC,
		Wagers:      wagerUC,
		Audits:      auditUC,
		Archive:     archiveUC,
		Strategy:    strategyUC,
		DraftCLI:    draftinadapter.NewCLIHandler(draftUC),
		WagerCLI:    wagerinadapter.NewCLIHandler(wagerUC),
		AuditCLI:    auditinadapter.NewCLIHandler(auditUC),
		ArchiveCLI:  archiveinadapter.NewCLIHandler(archiveUC),
		StrategyCLI: strategyinadapter.NewCLIHandler(strategyUC),
		store:       store,
		publisher:   publisher,
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.publisher.Close(), a.store.Close())
}

func openStore(ctx context.Context, cfg config.Config) (kv.Store, error) {
	if cfg.DatabaseURL != "" {
		store, err := kv.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	}
	store, err := kv.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func openPublisher(cfg config.Config, logger *zap.Logger) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		return events.Noop{}, nil
	}
	publisher, err := events.NewNATS(cfg.NATSURL, logger.Named("events"))
	if err != nil {
		return nil, fmt.Errorf("connect event bus: %w", err)
	}
	return publisher, nil
}

func newResolver(cfg config.Config, model *llm.Gemini) (auditout.Resolver, error) {
	switch cfg.Resolver {
	case config.ResolverGemini:
		if model == nil {
			return nil, fmt.Errorf("resolver %q needs GEMINI_API_KEY", cfg.Resolver)
		}
		return auditoutadapter.NewGeminiResolver(model), nil
	case config.ResolverPlugin:
		if cfg.PluginBinary == "" {
			return nil, fmt.Errorf("resolver %q needs plugin_binary", cfg.Resolver)
		}
		return auditoutadapter.NewPluginResolver(cfg.PluginBinary, cfg.PluginSHA256), nil
	default:
		return auditoutadapter.NewFixedResolver(), nil
	}
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(ctx, app.Config.DataDir, app.DraftCLI, app.WagerCLI, app.AuditCLI, app.Logger.Named("tui"))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
