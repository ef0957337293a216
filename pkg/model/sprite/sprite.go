package sprite

// Sprite is the URL of a sprite image.
type Sprite string

func (s *Sprite) URL() string {
	if s == nil {
		return ""
	}

	return string(*s)
}
