package model

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulbasaurJSON = `{
	"id": 1,
	"name": "bulbasaur",
	"height": 7,
	"weight": 69,
	"types": [
		{"slot": 2, "type": {"name": "poison", "url": "https://pokeapi.co/api/v2/type/4/"}},
		{"slot": 1, "type": {"name": "grass", "url": "https://pokeapi.co/api/v2/type/12/"}}
	],
	"stats": [
		{"base_stat": 45, "effort": 0, "stat": {"name": "hp"}},
		{"base_stat": 49, "effort": 0, "stat": {"name": "attack"}},
		{"base_stat": 49, "effort": 0, "stat": {"name": "defense"}},
		{"base_stat": 65, "effort": 1, "stat": {"name": "special-attack"}},
		{"base_stat": 65, "effort": 0, "stat": {"name": "special-defense"}},
		{"base_stat": 45, "effort": 0, "stat": {"name": "speed"}}
	],
	"abilities": [
		{"ability": {"name": "overgrow"}, "is_hidden": false, "slot": 1},
		{"ability": {"name": "chlorophyll"}, "is_hidden": true, "slot": 3}
	],
	"sprites": {"front_default": "https://img/1.png", "back_default": null},
	"species": {"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon-species/1/"}
}`

func decodeBulbasaur(t *testing.T) Pokemon {
	t.Helper()

	var pokemon Pokemon
	require.NoError(t, json.Unmarshal([]byte(bulbasaurJSON), &pokemon))
	return pokemon
}

func TestPokemonTypes(t *testing.T) {
	pokemon := decodeBulbasaur(t)

	assert.Equal(t, []string{"grass", "poison"}, pokemon.TypeNames())
	assert.True(t, pokemon.HasType("poison"))
	assert.False(t, pokemon.HasType("fire"))
	assert.Equal(t, TypeCombo{Type1: TypeGrass, Type2: TypePoison}, pokemon.TypeCombo())
}

func TestPokemonBaseStat(t *testing.T) {
	pokemon := decodeBulbasaur(t)

	for _, name := range IntrinsicStats {
		_, err := pokemon.BaseStat(name)
		require.NoError(t, err, name)
	}

	spa, err := pokemon.BaseStat(StatSpecialAttack)
	require.NoError(t, err)
	assert.Equal(t, 65, spa)
	assert.Equal(t, 318, PokemonStats(pokemon.Stats).Total())

	_, err = pokemon.BaseStat("accuracy")
	assert.ErrorIs(t, err, ErrNoStatFound)
}

func TestPokemonSprites(t *testing.T) {
	pokemon := decodeBulbasaur(t)

	assert.Equal(t, "https://img/1.png", pokemon.Sprites.Pick(false, false).URL())
	assert.Nil(t, pokemon.Sprites.Pick(true, false))
	assert.True(t, pokemon.Abilities[1].IsHidden)
}
