package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/config"
	"github.com/wyu6609/pokedex/pkg/favorites"
	"github.com/wyu6609/pokedex/pkg/pokeapi"
	"github.com/wyu6609/pokedex/pkg/storage"
	"go.uber.org/zap"
)

// cliScope is the favorites owner used by the command line.
const cliScope = "cli"

type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Read(a.configPath)
	if err != nil {
		return fmt.Errorf("error while reading config: %w", err)
	}
	a.cfg = cfg

	logger, err := newLogger(a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	return nil
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) openStorage(ctx context.Context) (*storage.Storage, error) {
	db, err := storage.New(ctx, a.cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("error while opening storage: %w", err)
	}

	return db, nil
}

// openFavorites returns the favorites store and a func releasing its backend.
// With no database path configured, favorites live in memory for the run.
func (a *app) openFavorites(ctx context.Context) (*favorites.Store, func(), error) {
	logger := a.logger.Named("favorites")
	if a.cfg.DB.Path == "" {
		logger.Warn("no database path configured, favorites will not persist")
		return favorites.New(favorites.NewMemoryKV(), logger), func() {}, nil
	}

	db, err := a.openStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		err := db.Close()
		if err != nil {
			logger.Warn("error while closing storage", zap.Error(err))
		}
	}

	return favorites.New(db, logger), closeDB, nil
}

func (a *app) loadCatalog(ctx context.Context, client *pokeapi.Client) (*catalog.Catalog, error) {
	a.logger.Info("loading pokemon", zap.String("api", a.cfg.API.BaseURL))

	list, err := client.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("error while loading catalog: %w", err)
	}

	cat := catalog.New(list)
	a.logger.Info("catalog ready", zap.Int("count", cat.Len()))

	return cat, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "pokedex",
		Short:             "Browse Pokémon from PokéAPI on the command line or through a Discord bot",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to the TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.botCmd(),
		a.browseCmd(),
		a.weakCmd(),
		a.favoritesCmd(),
	)

	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		cancel()
		os.Exit(1)
	}
}
