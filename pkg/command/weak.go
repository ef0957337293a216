package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
)

type weakPokemonOptions struct {
	Name discordField[string] `option:"pokemon"`
}

type weakTypeOptions struct {
	Name1 discordField[string]  `option:"type_1"`
	Name2 *discordField[string] `option:"type_2"`
}

type weakOptions struct {
	Pokemon *weakPokemonOptions `option:"pokemon"`
	Type    *weakTypeOptions    `option:"type"`
}

type weakResponder struct {
	catalog           *catalog.Catalog
	autocompleteLimit int
}

var weakNames = efficacyNames{
	doubleStrong: "Weaknesses (4x)",
	strong:       "Weaknesses (2x)",
	weak:         "Resistances (0.5x)",
	doubleWeak:   "Resistances (0.25x)",
	immune:       "Immunities",
}

func (resp weakResponder) Handle(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *weakOptions,
) (*discordgo.InteractionResponseData, error) {
	titleStrings := make([]string, 0, 3)
	var combo model.TypeCombo
	var thumbnail *discordgo.MessageEmbedThumbnail
	switch {
	case opt.Pokemon != nil:
		pokemon, ok := resp.catalog.ByName(opt.Pokemon.Name.Value)
		if !ok {
			return ephemeral("No Pokémon found with that name."), nil
		}

		titleStrings = append(titleStrings, format.PokemonName(pokemon.Name))
		combo = pokemon.TypeCombo()
		if sprite := pokemon.Sprites.Pick(false, false); sprite.URL() != "" {
			thumbnail = &discordgo.MessageEmbedThumbnail{URL: sprite.URL()}
		}
	case opt.Type != nil:
		typ1, err := model.TypeString(opt.Type.Name1.Value)
		if err != nil {
			return ephemeral(fmt.Sprintf("Unknown type %q.", opt.Type.Name1.Value)), nil
		}

		types := []model.Type{typ1}
		if opt.Type.Name2 != nil {
			typ2, err := model.TypeString(opt.Type.Name2.Value)
			if err != nil {
				return ephemeral(fmt.Sprintf("Unknown type %q.", opt.Type.Name2.Value)), nil
			}
			types = append(types, typ2)
		}
		combo = model.NewTypeCombo(types...)
	default:
		return nil, fmt.Errorf("unrecognized subcommand for command %q: %w", weakCommandName, ErrCommandFormat)
	}

	if combo.IsEmpty() {
		return ephemeral("That Pokémon has no known types."), nil
	}

	for _, typ := range combo.Types() {
		titleStrings = append(titleStrings, "["+format.TypeName(typ.String())+"]")
	}

	fields, err := efficaciesToFields(combo.DefendingEfficacies(), false, weakNames)
	if err != nil {
		return nil, fmt.Errorf("could not encode type efficacies: %w", err)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       strings.Join(titleStrings, " "),
				Description: "Defensive type chart",
				Color:       typeColors.Color(combo.Type1.String()),
				Thumbnail:   thumbnail,
				Fields:      fields,
			},
		},
	}, nil
}

func (resp weakResponder) Autocomplete(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *weakOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.Pokemon != nil:
		if opt.Pokemon.Name.Focused {
			s := pokemonSearcher{
				catalog: resp.catalog,
				query:   opt.Pokemon.Name.Value,
				limit:   resp.autocompleteLimit,
			}
			return searchChoices[model.Pokemon](ctx, s)
		}
	case opt.Type != nil:
		var prefix string
		switch {
		case opt.Type.Name1.Focused:
			prefix = opt.Type.Name1.Value
		case opt.Type.Name2 != nil && opt.Type.Name2.Focused:
			prefix = opt.Type.Name2.Value
		default:
			return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
		}

		s := typeSearcher{
			prefix: prefix,
			limit:  resp.autocompleteLimit,
		}
		return searchChoices[string](ctx, s)
	default:
		return nil, fmt.Errorf("no recognized subcommand in focus: %w", ErrCommandFormat)
	}

	return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
}

func (builder *Builder) weak(ctx context.Context) (Command, error) {
	resp := weakResponder{
		catalog:           builder.resources.Catalog,
		autocompleteLimit: builder.autocompleteLimit,
	}

	return command[weakOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        weakCommandName,
			Description: "View type chart against a defending Pokemon/type combination.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pokemon",
					Description: "View type chart against a defending Pokemon",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "pokemon",
							Description:  "Name of the Pokemon",
							Required:     true,
							Autocomplete: true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "type",
					Description: "View type chart against a defending type (combination)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "type_1",
							Description:  "Name of the first type",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "type_2",
							Description:  "Name of the second type",
							Required:     false,
							Autocomplete: true,
						},
					},
				},
			},
		},
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
	}, nil
}
