package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/glabrego/cardfeed/internal/app"
	"github.com/glabrego/cardfeed/internal/catalog"
	"github.com/glabrego/cardfeed/internal/config"
	"github.com/glabrego/cardfeed/internal/engagement"
	"github.com/glabrego/cardfeed/internal/logging"
	"github.com/glabrego/cardfeed/internal/storage"
	"github.com/glabrego/cardfeed/internal/tui"
)

var version = "dev"

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(runFn func(context.Context, config.Config) error) *cli.Command {
	return &cli.Command{
		Name:    "cardfeed",
		Usage:   "Browse an article feed as cards in the terminal",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "seed",
				Usage: "glob of YAML seed files (defaults to the bundled articles)",
			},
			&cli.StringFlag{
				Name:  "feed",
				Usage: "local RSS or Atom file to import instead of a seed",
			},
			&cli.StringFlag{
				Name:  "db-path",
				Usage: "sqlite catalog path (in-memory when unset)",
			},
			&cli.StringFlag{
				Name:  "viewer",
				Usage: "author name used for new comments (default You)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error (default info)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "path to log file (logs are discarded when unset)",
			},
			&cli.StringFlag{
				Name:  "images",
				Usage: "how body images are shown: label or none (default label)",
			},
			&cli.StringFlag{
				Name:  "markdown-style",
				Usage: "glamour style for markdown bodies (default dark)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "maximum number of articles shown (default 50)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return runFn(ctx, cfg)
		},
	}
}

// loadConfig reads CARDFEED_* variables and lets explicit flags win.
func loadConfig(c *cli.Command) (config.Config, error) {
	return config.Resolve(overridesFromFlags(c))
}

func overridesFromFlags(c *cli.Command) config.Overrides {
	var o config.Overrides
	str := func(name string) *string {
		if !c.IsSet(name) {
			return nil
		}
		v := c.String(name)
		return &v
	}
	o.SeedGlob = str("seed")
	o.FeedPath = str("feed")
	o.DBPath = str("db-path")
	o.Viewer = str("viewer")
	o.LogLevel = str("log-level")
	o.LogFile = str("log-file")
	o.Images = str("images")
	o.MarkdownStyle = str("markdown-style")
	if c.IsSet("limit") {
		limit := c.Int("limit")
		o.Limit = &limit
	}
	return o
}

func run(ctx context.Context, cfg config.Config) (err error) {
	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()
	log.Logger = logger
	defer func() {
		if err != nil {
			log.Error().Err(err).Msg("cardfeed exited")
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("cardfeed needs an interactive terminal")
	}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("storage init: %w", err)
	}
	defer repo.Close()

	loadCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := repo.Init(loadCtx); err != nil {
		return fmt.Errorf("storage schema: %w", err)
	}
	if err := repo.CheckWritable(loadCtx); err != nil {
		return fmt.Errorf("storage write check failed (%w), verify the catalog path is writable: %s", err, cfg.DBPath)
	}

	service := app.NewService(source(cfg), repo, logging.Component("app"))
	articles, err := service.Load(loadCtx, cfg.Limit)
	if err != nil {
		return err
	}

	model := tui.NewModel(articles, engagement.NewRegistry(cfg.Viewer))
	model.SetLogger(logging.Component("tui"))
	model.SetRenderOptions(cfg.RenderOptions())
	model.SetReloader(func(ctx context.Context) ([]catalog.Article, error) {
		return service.Load(ctx, cfg.Limit)
	})
	defer model.Shutdown()

	log.Info().Int("articles", len(articles)).Str("viewer", cfg.Viewer).Msg("starting feed")
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func source(cfg config.Config) catalog.Source {
	if cfg.FeedPath != "" {
		return catalog.RSSSource{Path: cfg.FeedPath}
	}
	return catalog.YAMLSource{Glob: cfg.SeedGlob}
}
