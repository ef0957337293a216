package catalog

import (
	"strings"

	"github.com/wyu6609/pokedex/pkg/model"
)

// Catalog owns the pokemon loaded for a session. It is never mutated after New,
// so it can be shared between handlers without locking.
type Catalog struct {
	pokemon []model.Pokemon
	byID    map[int]int
	byName  map[string]int
}

func New(list []model.Pokemon) *Catalog {
	pokemon := make([]model.Pokemon, len(list))
	copy(pokemon, list)

	cat := &Catalog{
		pokemon: pokemon,
		byID:    make(map[int]int, len(pokemon)),
		byName:  make(map[string]int, len(pokemon)),
	}
	for i := range pokemon {
		cat.byID[pokemon[i].ID] = i
		cat.byName[strings.ToLower(pokemon[i].Name)] = i
	}

	return cat
}

func (cat *Catalog) All() []model.Pokemon {
	return cat.pokemon
}

func (cat *Catalog) Len() int {
	return len(cat.pokemon)
}

func (cat *Catalog) ByID(id int) (*model.Pokemon, bool) {
	i, ok := cat.byID[id]
	if !ok {
		return nil, false
	}

	return &cat.pokemon[i], true
}

func (cat *Catalog) ByName(name string) (*model.Pokemon, bool) {
	i, ok := cat.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}

	return &cat.pokemon[i], true
}

func (cat *Catalog) View(s State) Page[model.Pokemon] {
	return Derive(cat.pokemon, s)
}

// Suggest returns at most limit pokemon matching the query, for autocompletion.
func (cat *Catalog) Suggest(query string, limit int) []model.Pokemon {
	found := Search(cat.pokemon, query)
	if limit >= 0 && len(found) > limit {
		found = found[:limit]
	}

	return found
}

// Subset returns the pokemon with the given ids, in the order of ids. Ids not
// in the catalog are skipped.
func (cat *Catalog) Subset(ids []int) []model.Pokemon {
	subset := make([]model.Pokemon, 0, len(ids))
	for _, id := range ids {
		if pokemon, ok := cat.ByID(id); ok {
			subset = append(subset, *pokemon)
		}
	}

	return subset
}
