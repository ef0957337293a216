package command

import "github.com/wyu6609/pokedex/pkg/model"

const defaultColor = 0xE3350D

type Colors map[model.Type]int

var typeColors = Colors{
	model.TypeNormal:   0xA8A77A,
	model.TypeFighting: 0xC22E28,
	model.TypeFlying:   0xA98FF3,
	model.TypePoison:   0xA33EA1,
	model.TypeGround:   0xE2BF65,
	model.TypeRock:     0xB6A136,
	model.TypeBug:      0xA6B91A,
	model.TypeGhost:    0x735797,
	model.TypeSteel:    0xB7B7CE,
	model.TypeFire:     0xEE8130,
	model.TypeWater:    0x6390F0,
	model.TypeGrass:    0x7AC74C,
	model.TypeElectric: 0xF7D02C,
	model.TypePsychic:  0xF95587,
	model.TypeIce:      0x96D9D6,
	model.TypeDragon:   0x6F35FC,
	model.TypeDark:     0x705746,
	model.TypeFairy:    0xD685AD,
}

// Color returns the embed color for a type name, falling back to the dex red.
func (colors Colors) Color(name string) int {
	typ, err := model.TypeString(name)
	if err != nil {
		return defaultColor
	}

	if color, ok := colors[typ]; ok {
		return color
	}

	return defaultColor
}
