package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bnema/contentkit-cli/internal/adapters/backend"
	"github.com/bnema/contentkit-cli/internal/adapters/config"
	tomlrepo "github.com/bnema/contentkit-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/contentkit-cli/internal/adapters/secrets/chain"
	"github.com/bnema/contentkit-cli/internal/adapters/terminal"
	"github.com/bnema/contentkit-cli/internal/application"
	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultPassPrefix = "contentkit"

type app struct {
	cfg       config.Config
	logger    *zap.Logger
	sessions  ports.SessionRepository
	auth      *application.AuthService
	credits   *application.CreditService
	content   *backend.ContentAPI
	accounts  *backend.AccountsAPI
	registry  *config.Registry
	moderator domain.Moderator
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	sessions, err := tomlrepo.NewSessionRepository(cfg.SessionPath)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(envOrDefault("CK_PASS_PREFIX", defaultPassPrefix), cfg.SecretsDir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	auth := application.NewAuthService(sessions, secretStore, ports.SystemClock{})

	contentClient, err := backend.NewClient(backend.Config{
		BaseURL: cfg.ContentAPI,
		Timeout: cfg.HTTPTimeout,
		Token:   auth.AccessToken,
		Logger:  logger.Named("content"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire content api: %w", err)
	}

	accountsClient, err := backend.NewClient(backend.Config{
		BaseURL: cfg.AccountsAPI,
		Timeout: cfg.HTTPTimeout,
		Token:   auth.AccessToken,
		Logger:  logger.Named("accounts"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire accounts api: %w", err)
	}

	registry, err := config.LoadRegistry(cfg.ToolsPath)
	if err != nil {
		return nil, fmt.Errorf("load tool profiles: %w", err)
	}

	accounts := backend.NewAccountsAPI(accountsClient)

	return &app{
		cfg:       cfg,
		logger:    logger,
		sessions:  sessions,
		auth:      auth,
		credits:   application.NewCreditService(accounts, sessions),
		content:   backend.NewContentAPI(contentClient),
		accounts:  accounts,
		registry:  registry,
		moderator: domain.NewModerator(cfg.ExtraWords),
	}, nil
}

func newLogger(out io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(out)), lvl)

	return zap.New(core), nil
}

func (a *app) newCatalogService(notifier ports.Notifier) *application.CatalogService {
	return application.NewCatalogService(application.CatalogDeps{
		Catalog:   a.accounts,
		Bookmarks: a.accounts,
		Sessions:  a.sessions,
		Notifier:  notifier,
	},
		application.WithDebounceWindow(a.cfg.SearchDebounce),
		application.WithCatalogLogger(a.logger.Named("catalog")),
	)
}

func (a *app) newGenerationSession(profile domain.ToolProfile, notifier ports.Notifier, viewport ports.Viewport, observer func(application.Transition)) (*application.GenerationSession, error) {
	return application.NewGenerationSession(profile, application.GenerationDeps{
		Ledger:    a.accounts,
		Generator: a.content,
		Sessions:  a.sessions,
		Notifier:  notifier,
		Viewport:  viewport,
	},
		application.WithScrollDelay(a.cfg.ScrollDelay),
		application.WithModerator(a.moderator),
		application.WithObserver(observer),
		application.WithLogger(a.logger.Named("generate")),
	)
}

func (a *app) newExportService(out io.Writer, notifier ports.Notifier) *application.ExportService {
	return application.NewExportService(
		terminal.NewClipboard(out),
		terminal.NewDownloader(a.cfg.DownloadsDir),
		terminal.UnavailableSharer{},
		notifier,
	)
}

// categories lists the profile categories followed by My Tools, as shown by the browser.
func (a *app) categories() []string {
	seen := map[string]struct{}{}
	categories := make([]string, 0)
	for _, profile := range a.registry.List() {
		if profile.Category == "" {
			continue
		}
		if _, ok := seen[profile.Category]; ok {
			continue
		}
		seen[profile.Category] = struct{}{}
		categories = append(categories, profile.Category)
	}
	sort.Strings(categories)

	return append(categories, domain.MyToolsCategory)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
