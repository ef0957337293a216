package sprite

type Sprites struct {
	Front
	Back
}

// Pick chooses the sprite for the requested side and coloring. It may be nil,
// since PokéAPI leaves many forms without back or shiny art.
func (s Sprites) Pick(back bool, shiny bool) *Sprite {
	if back {
		return s.Back.pick(shiny)
	}

	return s.Front.pick(shiny)
}

const OfficialArtwork = "official-artwork"

type PokemonSprites struct {
	Sprites
	Other map[string]Sprites `json:"other"`
}

// Artwork returns the official artwork, falling back to the default front sprite.
func (ps PokemonSprites) Artwork(shiny bool) *Sprite {
	if other, ok := ps.Other[OfficialArtwork]; ok {
		if s := other.Front.pick(shiny); s != nil {
			return s
		}
	}

	return ps.Front.pick(shiny)
}
