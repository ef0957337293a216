package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultIDWidth = 4

func Capitalize(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func PadWithZeros(n int, size int) string {
	return fmt.Sprintf("%0*d", size, n)
}

// PokemonID renders an id the way the dex shows it, e.g. "#0025".
func PokemonID(id int) string {
	return "#" + PadWithZeros(id, DefaultIDWidth)
}

func DecimetersToMeters(dm int) string {
	return fmt.Sprintf("%.1f", float64(dm)*0.1)
}

func HectogramsToKilograms(hg int) string {
	return fmt.Sprintf("%.1f", float64(hg)*0.1)
}

var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Sp. Atk",
	"special-defense": "Sp. Def",
	"speed":           "Speed",
}

func StatName(name string) string {
	if label, ok := statLabels[name]; ok {
		return label
	}

	return Capitalize(name)
}

// AbilityName turns a hyphenated resource name into words: "solar-power" -> "Solar Power".
// A Caser keeps state between calls, so each call gets its own.
func AbilityName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

func PokemonName(name string) string {
	return AbilityName(name)
}

func TypeName(name string) string {
	return Capitalize(name)
}
