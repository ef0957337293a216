package model

// NamedResource is PokéAPI's reference shape: a name plus the URL of the full resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ResourceList struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []NamedResource `json:"results"`
}
