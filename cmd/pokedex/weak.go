package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
)

func typeNames(types []model.Type) string {
	if len(types) == 0 {
		return "-"
	}

	names := make([]string, len(types))
	for i, typ := range types {
		names[i] = format.TypeName(typ.String())
	}

	return strings.Join(names, ", ")
}

func (a *app) weakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weak <type> [type]",
		Short: "Print the defensive matchups of a type combination",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			types := make([]model.Type, 0, len(args))
			for _, arg := range args {
				typ, err := model.TypeString(arg)
				if err != nil {
					return fmt.Errorf("type %q: %w", arg, ErrUnknownType)
				}
				types = append(types, typ)
			}

			combo := model.NewTypeCombo(types...)
			profile := combo.Profile()

			labels := make([]string, 0, 2)
			for _, typ := range combo.Types() {
				labels = append(labels, format.TypeName(typ.String()))
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, strings.Join(labels, " / "))

			tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
			fmt.Fprintf(tw, "Weaknesses:\t%s\n", typeNames(profile.Weaknesses))
			fmt.Fprintf(tw, "Resistances:\t%s\n", typeNames(profile.Resistances))
			fmt.Fprintf(tw, "Immunities:\t%s\n", typeNames(profile.Immunities))

			return tw.Flush()
		},
	}
}
