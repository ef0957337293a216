package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/favorites"
)

// favoritesOptions is empty; the paginator still needs a concrete type.
type favoritesOptions struct{}

type favoritesResponder struct {
	catalog   *catalog.Catalog
	favorites *favorites.Store
	pageSize  int
}

func (resp favoritesResponder) Paginate(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	p paginator[favoritesOptions],
) (*discordgo.InteractionResponseData, error) {
	user, err := userID(interaction)
	if err != nil {
		return nil, fmt.Errorf("could not identify user for favorites: %w", err)
	}

	ids := resp.favorites.All(ctx, user)
	list := resp.catalog.Subset(ids)
	if len(list) == 0 {
		return ephemeral("You have no favorites yet. Use /favorite to add some."), nil
	}

	page := catalog.Paginate(list, p.Page, resp.pageSize)
	components, err := p.moveButtons(favoritesCommandName, page)
	if err != nil {
		return nil, fmt.Errorf("could not create page buttons: %w", err)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:  "Favorite Pokémon",
				Color:  defaultColor,
				Fields: pokemonFields(page.Items, idSet(ids)),
				Footer: pageFooter(page),
			},
		},
		Components: components,
		Flags:      discordgo.MessageFlagsEphemeral,
	}, nil
}

func (builder *Builder) favorites(ctx context.Context) (Command, error) {
	resp := favoritesResponder{
		catalog:   builder.resources.Catalog,
		favorites: builder.resources.Favorites,
		pageSize:  builder.pageSize,
	}

	return command[favoritesOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        favoritesCommandName,
			Description: "List your favorite Pokemon.",
		},
		paginate: resp.Paginate,
	}, nil
}
