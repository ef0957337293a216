package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureDetails = map[string]string{
	"1": `{"id":1,"name":"bulbasaur","height":7,"weight":69,"types":[{"slot":1,"type":{"name":"grass"}},{"slot":2,"type":{"name":"poison"}}]}`,
	"4": `{"id":4,"name":"charmander","height":6,"weight":85,"types":[{"slot":1,"type":{"name":"fire"}}]}`,
	"6": `{"id":6,"name":"charizard","height":17,"weight":905,"types":[{"slot":1,"type":{"name":"fire"}},{"slot":2,"type":{"name":"flying"}}]}`,
}

func fakePokeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(r.URL.Path, "/")
		switch {
		case path == "pokemon":
			results := make([]string, 0, len(fixtureDetails))
			for _, id := range []string{"1", "4", "6", "7"} {
				results = append(results, fmt.Sprintf(`{"name":"mon%s","url":"http://%s/pokemon/%s/"}`, id, r.Host, id))
			}
			fmt.Fprintf(w, `{"count":%d,"next":null,"results":[%s]}`, len(results), strings.Join(results, ","))
		case strings.HasPrefix(path, "pokemon/"):
			body, ok := fixtureDetails[strings.TrimPrefix(path, "pokemon/")]
			if !ok {
				http.Error(w, "missing", http.StatusNotFound)
				return
			}
			fmt.Fprint(w, body)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func writeConfig(t *testing.T, apiURL string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "pokedex.toml")
	content := fmt.Sprintf(`
[database]
path = %q

[api]
base_url = %q
batch_size = 2
batch_delay = "0s"

[catalog]
page_size = 2
`, filepath.Join(dir, "pokedex.db"), apiURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestWeak(t *testing.T) {
	cfg := writeConfig(t, "http://127.0.0.1:0")

	out, err := run(t, "--config", cfg, "weak", "fire", "FLYING")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Fire / Flying", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Weaknesses:"))
	assert.True(t, strings.HasSuffix(lines[1], "Rock, Water, Electric"))
	assert.True(t, strings.HasSuffix(lines[2], "Fighting, Bug, Steel, Fire, Grass, Fairy"))
	assert.True(t, strings.HasSuffix(lines[3], "Ground"))
}

func TestWeakUnknownType(t *testing.T) {
	cfg := writeConfig(t, "http://127.0.0.1:0")

	_, err := run(t, "--config", cfg, "weak", "cosmic")
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = run(t, "--config", cfg, "weak")
	assert.Error(t, err)
}

func TestFavorites(t *testing.T) {
	cfg := writeConfig(t, "http://127.0.0.1:0")

	out, err := run(t, "--config", cfg, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "No favorites.\n", out)

	_, err = run(t, "--config", cfg, "favorites", "add", "25")
	require.NoError(t, err)
	_, err = run(t, "--config", cfg, "favorites", "add", "1")
	require.NoError(t, err)

	out, err = run(t, "--config", cfg, "favorites", "toggle", "25")
	require.NoError(t, err)
	assert.Equal(t, "Removed #0025.\n#0001\n", out)

	out, err = run(t, "--config", cfg, "favorites", "toggle", "4")
	require.NoError(t, err)
	assert.Equal(t, "Added #0004.\n#0001\n#0004\n", out)

	out, err = run(t, "--config", cfg, "favorites", "remove", "1")
	require.NoError(t, err)
	assert.Equal(t, "#0004\n", out)

	out, err = run(t, "--config", cfg, "favorites", "owners")
	require.NoError(t, err)
	assert.Equal(t, "cli\n", out)

	out, err = run(t, "--config", cfg, "favorites", "clear")
	require.NoError(t, err)
	assert.Equal(t, "No favorites.\n", out)

	out, err = run(t, "--config", cfg, "favorites", "owners")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "--config", cfg, "favorites", "add", "pikachu")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestBrowse(t *testing.T) {
	srv := fakePokeAPI(t)
	cfg := writeConfig(t, srv.URL)

	_, err := run(t, "--config", cfg, "favorites", "add", "6")
	require.NoError(t, err)

	out, err := run(t, "--config", cfg, "browse", "--type", "fire")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "#0004")
	assert.Contains(t, lines[1], "Charmander")
	assert.NotContains(t, lines[1], "★")
	assert.Contains(t, lines[2], "★")
	assert.Contains(t, lines[2], "Fire / Flying")
	assert.Contains(t, lines[2], "90.5 kg")
	assert.Equal(t, "Page 1 of 1 · 2 Pokémon", lines[3])

	out, err = run(t, "--config", cfg, "browse", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Charizard")
	assert.Contains(t, out, "Page 2 of 2 · 3 Pokémon")

	_, err = run(t, "--config", cfg, "browse", "--type", "shadow")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestBotRequiresToken(t *testing.T) {
	t.Setenv("POKEDEX_DISCORD_TOKEN", "")
	cfg := writeConfig(t, "http://127.0.0.1:0")

	_, err := run(t, "--config", cfg, "bot")
	assert.Error(t, err)
}

func TestFavoritesWithoutDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokedex.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database]\npath = \"\"\n"), 0o600))

	out, err := run(t, "--config", path, "favorites", "add", "7")
	require.NoError(t, err)
	assert.Equal(t, "#0007\n", out)

	out, err = run(t, "--config", path, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "No favorites.\n", out)
}

func TestWeakRepeatedType(t *testing.T) {
	cfg := writeConfig(t, "http://127.0.0.1:0")

	out, err := run(t, "--config", cfg, "weak", "fire", "fire")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Fire", lines[0])
}

func TestFavoritesOwnersWithoutDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokedex.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database]\npath = \"\"\n"), 0o600))

	_, err := run(t, "--config", path, "favorites", "owners")
	assert.ErrorIs(t, err, ErrNoDatabase)
}
