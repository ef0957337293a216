package command

import (
	"context"
	"fmt"

	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/config"
	"github.com/wyu6609/pokedex/pkg/favorites"
	"github.com/wyu6609/pokedex/pkg/model"
	"go.uber.org/zap"
)

const (
	dexCommandName       = "dex"
	pokemonCommandName   = "pokemon"
	weakCommandName      = "weak"
	favoriteCommandName  = "favorite"
	favoritesCommandName = "favorites"
)

type SpeciesFetcher interface {
	Species(ctx context.Context, url string) (*model.Species, error)
}

// Resources is the shared state every command reads from.
type Resources struct {
	Catalog   *catalog.Catalog
	Favorites *favorites.Store
	Species   SpeciesFetcher
}

type commandFunc func(*Builder, context.Context) (Command, error)

type Builder struct {
	resources Resources
	logger    *zap.Logger

	funcs             []commandFunc
	pageSize          int
	autocompleteLimit int
}

func NewBuilder(res Resources, cfg config.Config, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Builder{
		resources: res,
		logger:    logger,
		funcs: []commandFunc{
			(*Builder).dex,
			(*Builder).pokemon,
			(*Builder).weak,
			(*Builder).favorite,
			(*Builder).favorites,
			(*Builder).coverage,
		},
		pageSize:          min(cfg.Catalog.PageSize, config.MaxPageSize),
		autocompleteLimit: min(cfg.Catalog.AutocompleteLimit, 25),
	}
}

func (builder *Builder) All(ctx context.Context) (map[string]Command, error) {
	commands := make(map[string]Command, len(builder.funcs))

	for _, f := range builder.funcs {
		cmd, err := f(builder, ctx)
		if err != nil {
			return nil, fmt.Errorf("error while creating command: %w", err)
		}
		commands[cmd.Name()] = cmd
	}

	return commands, nil
}
