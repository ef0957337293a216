package model

import (
	"sort"

	"github.com/wyu6609/pokedex/pkg/model/sprite"
)

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type Pokemon struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`

	Types     []PokemonType         `json:"types"`
	Stats     []PokemonStat         `json:"stats"`
	Abilities []PokemonAbility      `json:"abilities"`
	Sprites   sprite.PokemonSprites `json:"sprites"`
	Species   NamedResource         `json:"species"`
}

// TypeNames returns the type tags in slot order, primary first.
func (pokemon *Pokemon) TypeNames() []string {
	types := make([]PokemonType, len(pokemon.Types))
	copy(types, pokemon.Types)
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Slot < types[j].Slot
	})

	names := make([]string, len(types))
	for i, typ := range types {
		names[i] = typ.Type.Name
	}

	return names
}

func (pokemon *Pokemon) HasType(name string) bool {
	for _, typ := range pokemon.Types {
		if typ.Type.Name == name {
			return true
		}
	}

	return false
}

// TypeCombo builds the defending combination for this pokemon. Tags outside the
// 18 known types are left out.
func (pokemon *Pokemon) TypeCombo() TypeCombo {
	var combo TypeCombo
	for _, name := range pokemon.TypeNames() {
		typ, err := TypeString(name)
		if err != nil {
			continue
		}

		switch {
		case combo.Type1 == 0:
			combo.Type1 = typ
		case combo.Type2 == 0:
			combo.Type2 = typ
		}
	}

	return combo
}

func (pokemon *Pokemon) BaseStat(name StatName) (int, error) {
	return PokemonStats(pokemon.Stats).baseStat(name)
}
