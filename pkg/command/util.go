package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
)

var ErrCommandFormat = errors.New("invalid command format")

var ErrNoUser = errors.New("interaction has no user")

// userID identifies who triggered an interaction, in a guild or a DM.
func userID(interaction *discordgo.InteractionCreate) (string, error) {
	switch {
	case interaction.Member != nil && interaction.Member.User != nil:
		return interaction.Member.User.ID, nil
	case interaction.User != nil:
		return interaction.User.ID, nil
	default:
		return "", ErrNoUser
	}
}

func ephemeral(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func searchChoices[T any](ctx context.Context, s searcher[T]) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	results, err := s.Search(ctx)
	if err != nil {
		return nil, fmt.Errorf("error while searching for matching resources: %w", err)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(results))
	for i, res := range results {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  s.Label(res),
			Value: s.Value(res),
		}
	}

	return choices, nil
}

func typesLabel(pokemon *model.Pokemon) string {
	names := pokemon.TypeNames()
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = format.TypeName(name)
	}

	return strings.Join(labels, " / ")
}

func primaryColor(pokemon *model.Pokemon) int {
	names := pokemon.TypeNames()
	if len(names) == 0 {
		return defaultColor
	}

	return typeColors.Color(names[0])
}

// pokemonFields renders one inline field per pokemon on a page, starring the
// ones in favorites.
func pokemonFields(pokemon []model.Pokemon, favorites map[int]bool) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, len(pokemon))
	for i := range pokemon {
		name := format.PokemonID(pokemon[i].ID) + " " + format.PokemonName(pokemon[i].Name)
		if favorites[pokemon[i].ID] {
			name += " ★"
		}

		value := typesLabel(&pokemon[i])
		if value == "" {
			value = "_Unknown_"
		}

		fields[i] = &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value,
			Inline: true,
		}
	}

	return fields
}

func pageFooter(page catalog.Page[model.Pokemon]) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Page %d of %d · %d Pokémon", page.CurrentPage, max(page.TotalPages, 1), page.TotalItems),
	}
}

func idSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	return set
}

func pageButton[T any](cmdName string, p paginator[T], page int, label string, style discordgo.ButtonStyle, disabled bool) (discordgo.Button, error) {
	id, err := customID(cmdName, paginator[T]{Options: p.Options, Page: page})
	if err != nil {
		return discordgo.Button{}, fmt.Errorf("failed to create button for page %d: %w", page, err)
	}

	return discordgo.Button{
		Style:    style,
		Label:    label,
		CustomID: id,
		Disabled: disabled,
	}, nil
}

// moveButtons builds the first/previous/next/last row and a row of numbered
// page buttons. Single page results get no buttons.
func (p paginator[T]) moveButtons(cmdName string, page catalog.Page[model.Pokemon]) ([]discordgo.MessageComponent, error) {
	if page.TotalPages <= 1 {
		return nil, nil
	}

	type move struct {
		label    string
		page     int
		disabled bool
	}
	moves := []move{
		{"⏮", 1, !page.HasPrevious()},
		{"⏴", page.CurrentPage - 1, !page.HasPrevious()},
		{"⏵", page.CurrentPage + 1, !page.HasNext()},
		{"⏭", page.TotalPages, !page.HasNext()},
	}

	nav := make([]discordgo.MessageComponent, len(moves))
	for i, m := range moves {
		button, err := pageButton(cmdName, p, m.page, m.label, discordgo.PrimaryButton, m.disabled)
		if err != nil {
			return nil, err
		}
		nav[i] = button
	}

	numbers := make([]discordgo.MessageComponent, 0, 5)
	for _, n := range catalog.PageNumbers(page.CurrentPage, page.TotalPages) {
		if n == catalog.Ellipsis {
			continue
		}

		style := discordgo.SecondaryButton
		if n == page.CurrentPage {
			style = discordgo.SuccessButton
		}
		button, err := pageButton(cmdName, p, n, strconv.Itoa(n), style, n == page.CurrentPage)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, button)
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: nav},
		discordgo.ActionsRow{Components: numbers},
	}, nil
}

func followUpButton[T any](cmdName string, options T, label string, style discordgo.ButtonStyle) (discordgo.Button, error) {
	id, err := customID(cmdName, followUp[T]{Options: options})
	if err != nil {
		return discordgo.Button{}, fmt.Errorf("failed to create follow-up button for command %q: %w", cmdName, err)
	}

	return discordgo.Button{
		Style:    style,
		Label:    label,
		CustomID: id,
	}, nil
}

type efficacyNames struct {
	doubleStrong string
	strong       string
	neutral      string
	weak         string
	doubleWeak   string
	immune       string
}

func typeList(types []model.Type) string {
	labels := make([]string, len(types))
	for i, typ := range types {
		labels[i] = format.TypeName(typ.String())
	}

	return strings.Join(labels, ", ")
}

// efficaciesToFields groups attacking types by damage factor, one field per
// non-empty group. Groups without a name are left out. With includeAll, empty
// single-factor groups are kept and marked as none.
func efficaciesToFields(effs []model.TypeEfficacy, includeAll bool, names efficacyNames) ([]*discordgo.MessageEmbedField, error) {
	groups := make(map[model.EfficacyLevel][]model.Type, 6)
	for _, te := range effs {
		switch te.Level {
		case model.DoubleSuperEffective, model.SuperEffective, model.NormalEffective,
			model.NotVeryEffective, model.DoubleNotVeryEffective, model.Immune:
			groups[te.Level] = append(groups[te.Level], te.OpposingType)
		default:
			return nil, fmt.Errorf("unexpected type efficacy level %d: %w", te.Level, ErrUnrecognizedInteraction)
		}
	}

	order := []struct {
		level    model.EfficacyLevel
		name     string
		optional bool
	}{
		{model.DoubleSuperEffective, names.doubleStrong, true},
		{model.SuperEffective, names.strong, false},
		{model.NormalEffective, names.neutral, false},
		{model.NotVeryEffective, names.weak, false},
		{model.DoubleNotVeryEffective, names.doubleWeak, true},
		{model.Immune, names.immune, false},
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(order))
	for _, o := range order {
		if o.name == "" {
			continue
		}

		types := groups[o.level]
		switch {
		case len(types) > 0:
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  o.name,
				Value: typeList(types),
			})
		case includeAll && !o.optional:
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  o.name,
				Value: "_None_",
			})
		}
	}

	return fields, nil
}

func profileFields(profile model.Profile) []*discordgo.MessageEmbedField {
	sets := []struct {
		name  string
		types []model.Type
	}{
		{"Weaknesses", profile.Weaknesses},
		{"Resistances", profile.Resistances},
		{"Immunities", profile.Immunities},
	}

	fields := make([]*discordgo.MessageEmbedField, len(sets))
	for i, set := range sets {
		value := typeList(set.types)
		if value == "" {
			value = "_None_"
		}
		fields[i] = &discordgo.MessageEmbedField{
			Name:  set.name,
			Value: value,
		}
	}

	return fields
}
