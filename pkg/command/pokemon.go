package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/favorites"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
	"go.uber.org/zap"
)

type pokemonOptions struct {
	Name  discordField[string] `option:"name"`
	Shiny *discordField[bool]  `option:"shiny"`
	Back  *discordField[bool]  `option:"back"`
}

type pokemonResponder struct {
	catalog           *catalog.Catalog
	favorites         *favorites.Store
	species           SpeciesFetcher
	logger            *zap.Logger
	autocompleteLimit int
}

// speciesDetails fetches the description and habitat. The card is still shown
// without them when the species endpoint fails.
func (resp pokemonResponder) speciesDetails(ctx context.Context, pokemon *model.Pokemon) (description string, genus string, habitat string) {
	habitat = "Unknown"
	if resp.species == nil || pokemon.Species.URL == "" {
		return
	}

	species, err := resp.species.Species(ctx, pokemon.Species.URL)
	if err != nil {
		resp.logger.Warn("could not fetch species",
			zap.String("pokemon", pokemon.Name),
			zap.Error(err),
		)
		return
	}

	description, err = species.Description(model.English)
	if err != nil {
		resp.logger.Debug("species has no description", zap.String("pokemon", pokemon.Name), zap.Error(err))
	}

	return description, species.Genus(model.English), format.Capitalize(species.HabitatName())
}

func abilityFields(abilities []model.PokemonAbility) []*discordgo.MessageEmbedField {
	visible := make([]string, 0, len(abilities))
	hidden := make([]string, 0, len(abilities))
	for _, ability := range abilities {
		name := format.AbilityName(ability.Ability.Name)
		if ability.IsHidden {
			hidden = append(hidden, name)
		} else {
			visible = append(visible, name)
		}
	}

	fields := make([]*discordgo.MessageEmbedField, 0, 2)
	if len(visible) > 0 || len(hidden) == 0 {
		value := strings.Join(visible, ", ")
		if value == "" {
			value = "_None_"
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Abilities", Value: value, Inline: true})
	}
	if len(hidden) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Hidden Abilities",
			Value:  strings.Join(hidden, ", "),
			Inline: true,
		})
	}

	return fields
}

func statFields(pokemon *model.Pokemon) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, len(model.IntrinsicStats)+1)
	for _, stat := range model.IntrinsicStats {
		value := "?"
		if bs, err := pokemon.BaseStat(stat); err == nil {
			value = strconv.Itoa(bs)
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   format.StatName(string(stat)),
			Value:  value,
			Inline: true,
		})
	}

	return append(fields, &discordgo.MessageEmbedField{
		Name:   "Total",
		Value:  strconv.Itoa(model.PokemonStats(pokemon.Stats).Total()),
		Inline: true,
	})
}

func (resp pokemonResponder) Handle(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *pokemonOptions,
) (*discordgo.InteractionResponseData, error) {
	pokemon, ok := resp.catalog.ByName(opt.Name.Value)
	if !ok {
		return ephemeral("No Pokémon found with that name."), nil
	}

	shiny := opt.Shiny != nil && opt.Shiny.Value
	back := opt.Back != nil && opt.Back.Value

	description, genus, habitat := resp.speciesDetails(ctx, pokemon)
	if genus != "" {
		description = strings.TrimSpace("_" + genus + "_\n" + description)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Type", Value: typesLabel(pokemon), Inline: true},
		{Name: "Height", Value: format.DecimetersToMeters(pokemon.Height) + " m", Inline: true},
		{Name: "Weight", Value: format.HectogramsToKilograms(pokemon.Weight) + " kg", Inline: true},
		{Name: "Habitat", Value: habitat, Inline: true},
	}
	fields = append(fields, abilityFields(pokemon.Abilities)...)
	fields = append(fields, statFields(pokemon)...)
	fields = append(fields, profileFields(pokemon.TypeCombo().Profile())...)

	embed := &discordgo.MessageEmbed{
		Title:       format.PokemonName(pokemon.Name) + " " + format.PokemonID(pokemon.ID),
		Description: description,
		Color:       primaryColor(pokemon),
		Fields:      fields,
	}
	if sprite := pokemon.Sprites.Pick(back, shiny); sprite.URL() != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: sprite.URL()}
	}
	if artwork := pokemon.Sprites.Artwork(shiny); artwork.URL() != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: artwork.URL()}
	}

	weakButton, err := followUpButton(
		weakCommandName,
		weakOptions{
			Pokemon: &weakPokemonOptions{
				Name: discordField[string]{Value: pokemon.Name},
			},
		},
		"Type Chart",
		discordgo.SecondaryButton,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create follow-up button for weak: %w", err)
	}

	label := "☆ Favorite"
	if user, err := userID(interaction); err == nil && resp.favorites.Contains(ctx, user, pokemon.ID) {
		label = "★ Unfavorite"
	}
	favoriteButton, err := followUpButton(
		favoriteCommandName,
		favoriteOptions{
			Name: discordField[string]{Value: pokemon.Name},
		},
		label,
		discordgo.PrimaryButton,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create follow-up button for favorite: %w", err)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					weakButton,
					favoriteButton,
				},
			},
		},
	}, nil
}

func (resp pokemonResponder) Autocomplete(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *pokemonOptions,
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

func (builder *Builder) pokemon(ctx context.Context) (Command, error) {
	resp := pokemonResponder{
		catalog:           builder.resources.Catalog,
		favorites:         builder.resources.Favorites,
		species:           builder.resources.Species,
		logger:            builder.logger.Named("pokemon"),
		autocompleteLimit: builder.autocompleteLimit,
	}

	return command[pokemonOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        pokemonCommandName,
			Description: "Show the details card for a Pokemon.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "name",
					Description:  "Name of the Pokemon",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "shiny",
					Description: "Show the shiny sprite",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "back",
					Description: "Show the sprite from behind",
					Required:    false,
				},
			},
		},
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
	}, nil
}
