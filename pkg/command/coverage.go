package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
)

const coverageCommandName = "coverage"

type coverageOptions struct {
	Name1 discordField[string]  `option:"type_1"`
	Name2 *discordField[string] `option:"type_2"`
}

type coverageResponder struct {
	autocompleteLimit int
}

// bestCoverage keeps, per defending type, the highest factor any of the
// attacking types reaches.
func bestCoverage(attacking []model.Type) []model.TypeEfficacy {
	var best []model.TypeEfficacy
	for _, typ := range attacking {
		effs := model.AttackingEfficacies(typ)
		if best == nil {
			best = effs
			continue
		}

		for i := range best {
			best[i].Level = max(best[i].Level, effs[i].Level)
		}
	}

	return best
}

func (resp coverageResponder) Handle(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *coverageOptions,
) (*discordgo.InteractionResponseData, error) {
	names := []string{opt.Name1.Value}
	if opt.Name2 != nil {
		names = append(names, opt.Name2.Value)
	}

	types := make([]model.Type, 0, len(names))
	titleStrings := make([]string, 0, len(names))
	for _, name := range names {
		typ, err := model.TypeString(name)
		if err != nil {
			return ephemeral(fmt.Sprintf("Unknown type %q.", name)), nil
		}
		types = append(types, typ)
		titleStrings = append(titleStrings, "["+format.TypeName(typ.String())+"]")
	}

	fields, err := efficaciesToFields(bestCoverage(types), true, efficacyNames{
		strong:  "Super Effective (2x)",
		neutral: "Neutral (1x)",
		weak:    "Resisted (0.5x)",
		immune:  "No Effect",
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode type efficacies: %w", err)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       strings.Join(titleStrings, " "),
				Description: "Offensive type coverage",
				Color:       typeColors[types[0]],
				Fields:      fields,
			},
		},
	}, nil
}

func (resp coverageResponder) Autocomplete(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt *coverageOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	var prefix string
	switch {
	case opt.Name1.Focused:
		prefix = opt.Name1.Value
	case opt.Name2 != nil && opt.Name2.Focused:
		prefix = opt.Name2.Value
	default:
		return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
	}

	s := typeSearcher{
		prefix: prefix,
		limit:  resp.autocompleteLimit,
	}
	return searchChoices[string](ctx, s)
}

func (builder *Builder) coverage(ctx context.Context) (Command, error) {
	resp := coverageResponder{
		autocompleteLimit: builder.autocompleteLimit,
	}

	return command[coverageOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        coverageCommandName,
			Description: "View how well attacking types hit each defending type.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type_1",
					Description:  "Name of the first attacking type",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type_2",
					Description:  "Name of the second attacking type",
					Required:     false,
					Autocomplete: true,
				},
			},
		},
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
	}, nil
}
