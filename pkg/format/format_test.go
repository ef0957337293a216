package format

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPokemonID(t *testing.T) {
	assert.Equal(t, "#0025", PokemonID(25))
	assert.Equal(t, "#0001", PokemonID(1))
	assert.Equal(t, "#10034", PokemonID(10034))
}

func TestPadWithZeros(t *testing.T) {
	assert.Equal(t, "007", PadWithZeros(7, 3))
	assert.Equal(t, "1234", PadWithZeros(1234, 2))
}

func TestUnitConversion(t *testing.T) {
	assert.Equal(t, "0.4", DecimetersToMeters(4))
	assert.Equal(t, "1.7", DecimetersToMeters(17))
	assert.Equal(t, "6.0", HectogramsToKilograms(60))
	assert.Equal(t, "90.5", HectogramsToKilograms(905))
}

func TestStatName(t *testing.T) {
	cases := map[string]string{
		"hp":              "HP",
		"special-attack":  "Sp. Atk",
		"special-defense": "Sp. Def",
		"speed":           "Speed",
		"accuracy":        "Accuracy",
	}
	for in, want := range cases {
		assert.Equal(t, want, StatName(in), in)
	}
}

func TestAbilityName(t *testing.T) {
	assert.Equal(t, "Solar Power", AbilityName("solar-power"))
	assert.Equal(t, "Blaze", AbilityName("blaze"))
	assert.Equal(t, "Mr Mime", PokemonName("mr-mime"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Fire", TypeName("fire"))
}

func TestAbilityNameConcurrent(t *testing.T) {
	names := map[string]string{
		"solar-power":   "Solar Power",
		"lightning-rod": "Lightning Rod",
		"mr-mime":       "Mr Mime",
		"iron-fist":     "Iron Fist",
		"pikachu":       "Pikachu",
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		bad []string
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				for in, want := range names {
					if got := AbilityName(in); got != want {
						mu.Lock()
						bad = append(bad, got)
						mu.Unlock()
					}
				}
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, bad)
}
