package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/favorites"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
)

type favoriteOptions struct {
	Name discordField[string] `option:"name"`
}

type favoriteResponder struct {
	catalog           *catalog.Catalog
	favorites         *favorites.Store
	autocompleteLimit int
}

func (resp favoriteResponder) Handle(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *favoriteOptions,
) (*discordgo.InteractionResponseData, error) {
	user, err := userID(interaction)
	if err != nil {
		return nil, fmt.Errorf("could not identify user for favorite: %w", err)
	}

	pokemon, ok := resp.catalog.ByName(opt.Name.Value)
	if !ok {
		return ephemeral("No Pokémon found with that name."), nil
	}

	name := format.PokemonName(pokemon.Name)
	ids, added := resp.favorites.Toggle(ctx, user, pokemon.ID)
	if added {
		return ephemeral(fmt.Sprintf("Added %s to your favorites (%d total).", name, len(ids))), nil
	}

	return ephemeral(fmt.Sprintf("Removed %s from your favorites (%d total).", name, len(ids))), nil
}

func (resp favoriteResponder) Autocomplete(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *favoriteOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if !opt.Name.Focused {
		return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
	}

	s := pokemonSearcher{
		catalog: resp.catalog,
		query:   opt.Name.Value,
		limit:   resp.autocompleteLimit,
	}
	return searchChoices[model.Pokemon](ctx, s)
}

func (builder *Builder) favorite(ctx context.Context) (Command, error) {
	resp := favoriteResponder{
		catalog:           builder.resources.Catalog,
		favorites:         builder.resources.Favorites,
		autocompleteLimit: builder.autocompleteLimit,
	}

	return command[favoriteOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        favoriteCommandName,
			Description: "Add a Pokemon to your favorites, or remove it if already there.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "name",
					Description:  "Name of the Pokemon",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
	}, nil
}
