package model

import (
	"errors"
	"fmt"
)

type StatName string

const (
	StatHP             StatName = "hp"
	StatAttack         StatName = "attack"
	StatDefense        StatName = "defense"
	StatSpecialAttack  StatName = "special-attack"
	StatSpecialDefense StatName = "special-defense"
	StatSpeed          StatName = "speed"
)

// IntrinsicStats are the six base stat slots every pokemon carries, in display order.
var IntrinsicStats = []StatName{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type PokemonStats []PokemonStat

var ErrNoStatFound = errors.New("could not find stat")

func (ps PokemonStats) baseStat(name StatName) (int, error) {
	for _, stat := range ps {
		if StatName(stat.Stat.Name) == name {
			return stat.BaseStat, nil
		}
	}

	return 0, fmt.Errorf("pokemon has no stat %q: %w", name, ErrNoStatFound)
}

func (ps PokemonStats) Total() int {
	total := 0
	for _, stat := range ps {
		total += stat.BaseStat
	}

	return total
}
