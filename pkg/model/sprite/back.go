package sprite

type Back struct {
	Default     *Sprite `json:"back_default"`
	Female      *Sprite `json:"back_female"`
	Shiny       *Sprite `json:"back_shiny"`
	ShinyFemale *Sprite `json:"back_shiny_female"`
}

func (b Back) pick(shiny bool) *Sprite {
	if shiny {
		return b.Shiny
	}

	return b.Default
}
