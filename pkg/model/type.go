package model

//go:generate enumer -type=Type -trimprefix=Type -transform=lower -json -text -output=type_enumer.go

// Type is one of the 18 type tags. Values match PokéAPI's type ids.
type Type int

const (
	TypeNormal Type = iota + 1
	TypeFighting
	TypeFlying
	TypePoison
	TypeGround
	TypeRock
	TypeBug
	TypeGhost
	TypeSteel
	TypeFire
	TypeWater
	TypeGrass
	TypeElectric
	TypePsychic
	TypeIce
	TypeDragon
	TypeDark
	TypeFairy
)

// TypeCombo is a defending combination of one or two types. A zero Type2
// means single-typed.
type TypeCombo struct {
	Type1 Type
	Type2 Type
}

func NewTypeCombo(types ...Type) TypeCombo {
	var combo TypeCombo
	for _, typ := range types {
		if !typ.IsAType() {
			continue
		}

		switch {
		case combo.Type1 == 0:
			combo.Type1 = typ
		case combo.Type2 == 0 && typ != combo.Type1:
			combo.Type2 = typ
		}
	}

	return combo
}

func (combo TypeCombo) Types() []Type {
	types := make([]Type, 0, 2)
	if combo.Type1.IsAType() {
		types = append(types, combo.Type1)
	}
	if combo.Type2.IsAType() && combo.Type2 != combo.Type1 {
		types = append(types, combo.Type2)
	}

	return types
}

func (combo TypeCombo) IsEmpty() bool {
	return len(combo.Types()) == 0
}
