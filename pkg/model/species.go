package model

import (
	"errors"
	"fmt"
	"strings"
)

// LocalizationCode is a PokéAPI language name.
type LocalizationCode string

const English LocalizationCode = "en"

type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

type Species struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	Genera            []Genus           `json:"genera"`
	Habitat           *NamedResource    `json:"habitat"`
}

var ErrNoDescription = errors.New("no flavor text for language")

var flavorTextReplacer = strings.NewReplacer("\f", " ", "\n", " ")

// Description returns the first flavor text written in the given language.
func (species *Species) Description(code LocalizationCode) (string, error) {
	for _, entry := range species.FlavorTextEntries {
		if LocalizationCode(entry.Language.Name) == code {
			return flavorTextReplacer.Replace(entry.FlavorText), nil
		}
	}

	return "", fmt.Errorf("species %q has no description for %q: %w", species.Name, code, ErrNoDescription)
}

func (species *Species) Genus(code LocalizationCode) string {
	for _, genus := range species.Genera {
		if LocalizationCode(genus.Language.Name) == code {
			return genus.Genus
		}
	}

	return ""
}

func (species *Species) HabitatName() string {
	if species.Habitat == nil || species.Habitat.Name == "" {
		return "Unknown"
	}

	return species.Habitat.Name
}
