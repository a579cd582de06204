package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/llehouerou/fortyfive/internal/app"
	"github.com/llehouerou/fortyfive/internal/config"
	"github.com/llehouerou/fortyfive/internal/coverart"
	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/errmsg"
	"github.com/llehouerou/fortyfive/internal/logging"
	"github.com/llehouerou/fortyfive/internal/tags"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
)

var version = "dev"

// flags are the command-line options.
type flags struct {
	File   string
	Config string
}

func main() {
	var f flags
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.StringVar(&f.File, "file", "", "audio file to pre-fill the search from and tag")
	flag.StringVar(&f.Config, "config", "", "additional config file")
	flag.Parse()

	if *showVersion {
		fmt.Println("fortyfive", version)
		return
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "fortyfive needs an interactive terminal")
		os.Exit(1)
	}
	if f.File != "" && !tags.IsMusicFile(f.File) {
		fmt.Fprintf(os.Stderr, "%s: not a supported audio file\n", f.File)
		os.Exit(1)
	}

	var program *tea.Program
	fxApp := fx.New(appOptions(f), fx.Populate(&program))

	if err := fxApp.Start(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}

	_, runErr := program.Run()
	stopErr := fxApp.Stop(context.Background())
	if err := multierr.Combine(runErr, stopErr); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// appOptions is the dependency graph of the TUI.
func appOptions(f flags) fx.Option {
	return fx.Options(
		fx.Supply(f),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Provide(
			loadConfig,
			newLogger,
			newCatalog,
			newImageFetcher,
			newTheme,
			newModel,
			newProgram,
		),
		fx.Invoke(registerHooks),
	)
}

func loadConfig(f flags) (*config.Config, error) {
	cfg, err := config.LoadFrom(f.Config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpConfigLoad, err)
	}
	return cfg, nil
}

// newLogger opens the log file. A logger that cannot be opened is replaced
// by a no-op one; logging never stops the UI.
func newLogger(lc fx.Lifecycle, cfg *config.Config) *zap.Logger {
	logger, closeFn, err := logging.New(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		return zap.NewNop()
	}
	lc.Append(fx.StopHook(closeFn))
	return logger
}

func newCatalog(cfg *config.Config, logger *zap.Logger) *discogs.Client {
	return discogs.NewClient(discogs.Options{
		BaseURL:     cfg.Discogs.BaseURL,
		UserAgent:   cfg.Discogs.UserAgent,
		Token:       cfg.Discogs.Token,
		Timeout:     cfg.Discogs.Timeout,
		MinInterval: cfg.Discogs.MinInterval,
		PerPage:     cfg.Discogs.PerPage,
		Logger:      logger.Named("discogs"),
	})
}

func newImageFetcher(cfg *config.Config, logger *zap.Logger) *coverart.Fetcher {
	return coverart.NewFetcher(logger.Named("images"), cfg.Discogs.UserAgent, cfg.Discogs.Timeout)
}

func newTheme(cfg *config.Config) *styles.Theme {
	return styles.New(styles.Overrides{
		Primary: cfg.Theme.Primary,
		Muted:   cfg.Theme.Muted,
		Error:   cfg.Theme.Error,
		Border:  cfg.Theme.Border,
	})
}

// newModel builds the root model. Requests still in flight are cancelled
// when the application stops.
func newModel(
	lc fx.Lifecycle,
	f flags,
	cfg *config.Config,
	logger *zap.Logger,
	catalog *discogs.Client,
	images *coverart.Fetcher,
	theme *styles.Theme,
) *app.Model {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.StopHook(cancel))

	return app.New(app.Options{
		Catalog:    catalog,
		Images:     images,
		FilePath:   f.File,
		Theme:      theme,
		Logger:     logger.Named("app"),
		Cap:        cfg.Search.Cap,
		Thumbnails: cfg.ThumbnailsEnabled(),
		Context:    ctx,
	})
}

func newProgram(m *app.Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

func registerHooks(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger, f flags) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("fortyfive started",
				zap.String("version", version),
				zap.String("file", f.File),
				zap.Int("cap", cfg.Search.Cap),
				zap.Bool("thumbnails", cfg.ThumbnailsEnabled()),
			)
			if !cfg.HasToken() {
				logger.Warn("no Discogs token configured, searches may be refused",
					zap.String("env", config.TokenEnv))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			logger.Info("shutting down")
			return nil
		},
	})
}
