package model

import (
	"fmt"
	"sort"
)

type EfficacyLevel int

const (
	DoubleSuperEffective   EfficacyLevel = 400
	SuperEffective         EfficacyLevel = 200
	NormalEffective        EfficacyLevel = 100
	NotVeryEffective       EfficacyLevel = 50
	DoubleNotVeryEffective EfficacyLevel = 25
	Immune                 EfficacyLevel = 0
)

// TypeEfficacy pairs the type on the other side of a matchup with the damage
// factor, in percent.
type TypeEfficacy struct {
	OpposingType Type
	Level        EfficacyLevel
}

// Profile is the defensive matchup summary of a type combination. The three
// slices are disjoint and sorted in Type order.
type Profile struct {
	Weaknesses  []Type
	Resistances []Type
	Immunities  []Type
}

type typeChart struct {
	weaknesses  []Type
	resistances []Type
	immunities  []Type
}

// defendingChart holds, for each defending type, the attacking types it takes
// double damage from, half damage from and no damage from.
var defendingChart = [...]typeChart{
	TypeNormal: {
		weaknesses: []Type{TypeFighting},
		immunities: []Type{TypeGhost},
	},
	TypeFighting: {
		weaknesses:  []Type{TypeFlying, TypePsychic, TypeFairy},
		resistances: []Type{TypeRock, TypeBug, TypeDark},
	},
	TypeFlying: {
		weaknesses:  []Type{TypeRock, TypeElectric, TypeIce},
		resistances: []Type{TypeFighting, TypeBug, TypeGrass},
		immunities:  []Type{TypeGround},
	},
	TypePoison: {
		weaknesses:  []Type{TypeGround, TypePsychic},
		resistances: []Type{TypeFighting, TypePoison, TypeBug, TypeGrass, TypeFairy},
	},
	TypeGround: {
		weaknesses:  []Type{TypeWater, TypeGrass, TypeIce},
		resistances: []Type{TypePoison, TypeRock},
		immunities:  []Type{TypeElectric},
	},
	TypeRock: {
		weaknesses:  []Type{TypeFighting, TypeGround, TypeSteel, TypeWater, TypeGrass},
		resistances: []Type{TypeNormal, TypeFlying, TypePoison, TypeFire},
	},
	TypeBug: {
		weaknesses:  []Type{TypeFlying, TypeRock, TypeFire},
		resistances: []Type{TypeFighting, TypeGround, TypeGrass},
	},
	TypeGhost: {
		weaknesses:  []Type{TypeGhost, TypeDark},
		resistances: []Type{TypePoison, TypeBug},
		immunities:  []Type{TypeNormal, TypeFighting},
	},
	TypeSteel: {
		weaknesses: []Type{TypeFighting, TypeGround, TypeFire},
		resistances: []Type{
			TypeNormal, TypeFlying, TypeRock, TypeBug, TypeSteel,
			TypeGrass, TypePsychic, TypeIce, TypeDragon, TypeFairy,
		},
		immunities: []Type{TypePoison},
	},
	TypeFire: {
		weaknesses:  []Type{TypeGround, TypeRock, TypeWater},
		resistances: []Type{TypeBug, TypeSteel, TypeFire, TypeGrass, TypeIce, TypeFairy},
	},
	TypeWater: {
		weaknesses:  []Type{TypeGrass, TypeElectric},
		resistances: []Type{TypeSteel, TypeFire, TypeWater, TypeIce},
	},
	TypeGrass: {
		weaknesses:  []Type{TypeFlying, TypePoison, TypeBug, TypeFire, TypeIce},
		resistances: []Type{TypeGround, TypeWater, TypeGrass, TypeElectric},
	},
	TypeElectric: {
		weaknesses:  []Type{TypeGround},
		resistances: []Type{TypeFlying, TypeSteel, TypeElectric},
	},
	TypePsychic: {
		weaknesses:  []Type{TypeBug, TypeGhost, TypeDark},
		resistances: []Type{TypeFighting, TypePsychic},
	},
	TypeIce: {
		weaknesses:  []Type{TypeFighting, TypeRock, TypeSteel, TypeFire},
		resistances: []Type{TypeIce},
	},
	TypeDragon: {
		weaknesses:  []Type{TypeIce, TypeDragon, TypeFairy},
		resistances: []Type{TypeFire, TypeWater, TypeGrass, TypeElectric},
	},
	TypeDark: {
		weaknesses:  []Type{TypeFighting, TypeBug, TypeFairy},
		resistances: []Type{TypeGhost, TypeDark},
		immunities:  []Type{TypePsychic},
	},
	TypeFairy: {
		weaknesses:  []Type{TypePoison, TypeSteel},
		resistances: []Type{TypeFighting, TypeBug, TypeDark},
		immunities:  []Type{TypeDragon},
	},
}

func init() {
	err := validateChart()
	if err != nil {
		panic(err)
	}
}

func validateChart() error {
	if len(defendingChart)-1 != len(TypeValues()) {
		return fmt.Errorf("type chart has %d entries, want %d", len(defendingChart)-1, len(TypeValues()))
	}

	for _, typ := range TypeValues() {
		seen := make(map[Type]string)
		chart := defendingChart[typ]
		for set, types := range map[string][]Type{
			"weaknesses":  chart.weaknesses,
			"resistances": chart.resistances,
			"immunities":  chart.immunities,
		} {
			for _, other := range types {
				if !other.IsAType() {
					return fmt.Errorf("type chart for %s lists unknown type %d", typ, other)
				}
				if prev, ok := seen[other]; ok {
					return fmt.Errorf("type chart for %s lists %s in both %s and %s", typ, other, prev, set)
				}
				seen[other] = set
			}
		}
	}

	return nil
}

func chartFor(typ Type) (typeChart, bool) {
	if !typ.IsAType() {
		return typeChart{}, false
	}

	return defendingChart[typ], true
}

// Chart returns the single-type profile straight from the chart.
func Chart(typ Type) Profile {
	return Combine(typ)
}

type typeSet map[Type]struct{}

func (set typeSet) add(types []Type) {
	for _, typ := range types {
		set[typ] = struct{}{}
	}
}

func (set typeSet) has(typ Type) bool {
	_, ok := set[typ]
	return ok
}

func (set typeSet) sorted() []Type {
	types := make([]Type, 0, len(set))
	for typ := range set {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})

	return types
}

// Combine unions the chart entries of the given defending types. Immunities
// override everything, and a type that is both a weakness and a resistance
// cancels out of both. Unknown types contribute nothing.
func Combine(types ...Type) Profile {
	weak := make(typeSet)
	resist := make(typeSet)
	immune := make(typeSet)
	for _, typ := range types {
		chart, ok := chartFor(typ)
		if !ok {
			continue
		}
		weak.add(chart.weaknesses)
		resist.add(chart.resistances)
		immune.add(chart.immunities)
	}

	for typ := range immune {
		delete(weak, typ)
		delete(resist, typ)
	}

	for typ := range weak {
		if resist.has(typ) {
			delete(weak, typ)
			delete(resist, typ)
		}
	}

	return Profile{
		Weaknesses:  weak.sorted(),
		Resistances: resist.sorted(),
		Immunities:  immune.sorted(),
	}
}

// CombineNames is Combine over type tags; tags that are not one of the 18
// types are skipped.
func CombineNames(names ...string) Profile {
	types := make([]Type, 0, len(names))
	for _, name := range names {
		typ, err := TypeString(name)
		if err != nil {
			continue
		}
		types = append(types, typ)
	}

	return Combine(types...)
}

func (combo TypeCombo) Profile() Profile {
	return Combine(combo.Types()...)
}

// DamageFactor multiplies the per-type chart factors for an attacking type.
func (combo TypeCombo) DamageFactor(attacking Type) EfficacyLevel {
	factor := int(NormalEffective)
	for _, typ := range combo.Types() {
		chart := defendingChart[typ]
		switch {
		case containsType(chart.immunities, attacking):
			return Immune
		case containsType(chart.weaknesses, attacking):
			factor *= 2
		case containsType(chart.resistances, attacking):
			factor /= 2
		}
	}

	return EfficacyLevel(factor)
}

func (combo TypeCombo) DefendingEfficacies() []TypeEfficacy {
	effs := make([]TypeEfficacy, len(TypeValues()))
	for i, typ := range TypeValues() {
		effs[i] = TypeEfficacy{
			OpposingType: typ,
			Level:        combo.DamageFactor(typ),
		}
	}

	return effs
}

// AttackingEfficacies lists the factor of an attacking type against each
// single defending type.
func AttackingEfficacies(attacking Type) []TypeEfficacy {
	effs := make([]TypeEfficacy, len(TypeValues()))
	for i, typ := range TypeValues() {
		effs[i] = TypeEfficacy{
			OpposingType: typ,
			Level:        NewTypeCombo(typ).DamageFactor(attacking),
		}
	}

	return effs
}

func containsType(types []Type, typ Type) bool {
	for _, t := range types {
		if t == typ {
			return true
		}
	}

	return false
}
