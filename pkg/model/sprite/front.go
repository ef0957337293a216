package sprite

type Front struct {
	Default     *Sprite `json:"front_default"`
	Female      *Sprite `json:"front_female"`
	Shiny       *Sprite `json:"front_shiny"`
	ShinyFemale *Sprite `json:"front_shiny_female"`
}

func (f Front) pick(shiny bool) *Sprite {
	if shiny {
		return f.Shiny
	}

	return f.Default
}
