package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/favorites"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
)

const maxQueryLength = 25

type dexOptions struct {
	Type  *discordField[string] `option:"type"`
	Query *discordField[string] `option:"query"`
}

type dexResponder struct {
	catalog           *catalog.Catalog
	favorites         *favorites.Store
	pageSize          int
	autocompleteLimit int
}

func (resp dexResponder) state(opt *dexOptions) catalog.State {
	s := catalog.NewState(resp.pageSize)
	if opt.Type != nil {
		s = s.WithType(opt.Type.Value)
	}
	if opt.Query != nil {
		s = s.WithQuery(opt.Query.Value)
	}

	return s
}

func validTypeFilter(typ string) bool {
	if typ == catalog.AllTypes {
		return true
	}

	_, err := model.TypeString(typ)
	return err == nil
}

func (resp dexResponder) Handle(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *dexOptions,
) (*discordgo.InteractionResponseData, error) {
	return resp.Paginate(ctx, interaction, paginator[dexOptions]{Options: *opt, Page: 1})
}

func (resp dexResponder) Paginate(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	p paginator[dexOptions],
) (*discordgo.InteractionResponseData, error) {
	s := resp.state(&p.Options)
	if !validTypeFilter(s.Type) {
		return ephemeral(fmt.Sprintf("Unknown type %q.", s.Type)), nil
	}

	page := resp.catalog.View(s.WithPage(p.Page))

	var favs map[int]bool
	if user, err := userID(interaction); err == nil {
		favs = idSet(resp.favorites.All(ctx, user))
	}

	filters := make([]string, 0, 2)
	color := defaultColor
	if s.Type != catalog.AllTypes {
		filters = append(filters, "Type: "+format.TypeName(s.Type))
		color = typeColors.Color(s.Type)
	}
	if query := strings.TrimSpace(s.Query); query != "" {
		filters = append(filters, fmt.Sprintf("Search: %q", query))
	}

	description := strings.Join(filters, " · ")
	if page.TotalItems == 0 {
		description = strings.TrimSpace(description + "\nNo Pokémon match these filters.")
	}

	components, err := p.moveButtons(dexCommandName, page)
	if err != nil {
		return nil, fmt.Errorf("could not create page buttons: %w", err)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Pokédex",
				Description: description,
				Color:       color,
				Fields:      pokemonFields(page.Items, favs),
				Footer:      pageFooter(page),
			},
		},
		Components: components,
	}, nil
}

func (resp dexResponder) Autocomplete(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *dexOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.Type != nil && opt.Type.Focused:
		s := typeSearcher{
			prefix:     opt.Type.Value,
			limit:      resp.autocompleteLimit,
			includeAll: true,
		}
		return searchChoices[string](ctx, s)
	case opt.Query != nil && opt.Query.Focused:
		s := pokemonSearcher{
			catalog: resp.catalog,
			query:   opt.Query.Value,
			limit:   resp.autocompleteLimit,
		}
		return searchChoices[model.Pokemon](ctx, s)
	default:
		return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
	}
}

func (builder *Builder) dex(ctx context.Context) (Command, error) {
	resp := dexResponder{
		catalog:           builder.resources.Catalog,
		favorites:         builder.resources.Favorites,
		pageSize:          builder.pageSize,
		autocompleteLimit: builder.autocompleteLimit,
	}

	return command[dexOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        dexCommandName,
			Description: "Browse the Pokédex, filtered by type and search text.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type",
					Description:  "Only show Pokemon of this type",
					Required:     false,
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "query",
					Description:  "Only show Pokemon whose name contains this text",
					Required:     false,
					Autocomplete: true,
					MaxLength:    maxQueryLength,
				},
			},
		},
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
		paginate:     resp.Paginate,
	}, nil
}
