package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
	"github.com/wyu6609/pokedex/pkg/pokeapi"
)

var ErrUnknownType = errors.New("unknown type")

func typeLabels(pokemon *model.Pokemon) string {
	names := pokemon.TypeNames()
	for i, name := range names {
		names[i] = format.TypeName(name)
	}

	return strings.Join(names, " / ")
}

func printPage(w io.Writer, page catalog.Page[model.Pokemon], favorites map[int]bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tTYPES\tHEIGHT\tWEIGHT")
	for i := range page.Items {
		pokemon := &page.Items[i]
		star := ""
		if favorites[pokemon.ID] {
			star = "★"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s m\t%s kg\n",
			star,
			format.PokemonID(pokemon.ID),
			format.PokemonName(pokemon.Name),
			typeLabels(pokemon),
			format.DecimetersToMeters(pokemon.Height),
			format.HectogramsToKilograms(pokemon.Weight),
		)
	}

	err := tw.Flush()
	if err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	_, err = fmt.Fprintf(w, "Page %d of %d · %d Pokémon\n", page.CurrentPage, max(page.TotalPages, 1), page.TotalItems)
	return err
}

func (a *app) browseCmd() *cobra.Command {
	var typ, query string
	var page int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Print one page of the catalog, filtered by type and search text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s := catalog.NewState(a.cfg.Catalog.PageSize).WithType(typ).WithQuery(query).WithPage(page)
			if s.Type != catalog.AllTypes {
				if _, err := model.TypeString(s.Type); err != nil {
					return fmt.Errorf("type %q: %w", typ, ErrUnknownType)
				}
			}

			store, release, err := a.openFavorites(ctx)
			if err != nil {
				return err
			}
			defer release()

			client := pokeapi.New(a.cfg.API, a.logger.Named("pokeapi"))
			defer client.Close()

			cat, err := a.loadCatalog(ctx, client)
			if err != nil {
				return err
			}

			favs := make(map[int]bool)
			for _, id := range store.All(ctx, cliScope) {
				favs[id] = true
			}

			return printPage(cmd.OutOrStdout(), cat.View(s), favs)
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", catalog.AllTypes, "only show pokemon of this type")
	cmd.Flags().StringVarP(&query, "query", "q", "", "only show pokemon whose name or id contains this text")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")

	return cmd
}
