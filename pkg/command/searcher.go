package command

import (
	"context"
	"strings"

	"github.com/wyu6609/pokedex/pkg/catalog"
	"github.com/wyu6609/pokedex/pkg/format"
	"github.com/wyu6609/pokedex/pkg/model"
)

type searcher[T any] interface {
	Search(context.Context) ([]T, error)
	Label(T) string
	Value(T) any
}

type pokemonSearcher struct {
	catalog *catalog.Catalog
	query   string
	limit   int
}

func (s pokemonSearcher) Search(context.Context) ([]model.Pokemon, error) {
	return s.catalog.Suggest(s.query, s.limit), nil
}

func (pokemonSearcher) Label(pokemon model.Pokemon) string {
	return format.PokemonID(pokemon.ID) + " " + format.PokemonName(pokemon.Name)
}

func (pokemonSearcher) Value(pokemon model.Pokemon) any {
	return pokemon.Name
}

// typeSearcher completes type names by prefix. With includeAll set, the "all"
// filter value is offered as well.
type typeSearcher struct {
	prefix     string
	limit      int
	includeAll bool
}

func (s typeSearcher) Search(context.Context) ([]string, error) {
	prefix := strings.ToLower(strings.TrimSpace(s.prefix))

	names := make([]string, 0, len(model.TypeValues())+1)
	if s.includeAll {
		names = append(names, catalog.AllTypes)
	}
	names = append(names, model.TypeStrings()...)

	found := make([]string, 0, len(names))
	for _, name := range names {
		if s.limit >= 0 && len(found) >= s.limit {
			break
		}
		if strings.HasPrefix(name, prefix) {
			found = append(found, name)
		}
	}

	return found, nil
}

func (typeSearcher) Label(name string) string {
	if name == catalog.AllTypes {
		return "All Types"
	}

	return format.TypeName(name)
}

func (typeSearcher) Value(name string) any {
	return name
}
