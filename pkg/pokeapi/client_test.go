package pokeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wyu6609/pokedex/pkg/config"
	"github.com/wyu6609/pokedex/pkg/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeAPI serves /pokemon?limit=N and /pokemon/{id}/ for ids 1..count. Ids in
// failing answer with a 500.
type fakeAPI struct {
	count   int
	failing map[int]bool

	mu       sync.Mutex
	inflight int
	peak     int
	requests atomic.Int32
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	f.mu.Lock()
	f.inflight++
	f.peak = max(f.peak, f.inflight)
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}()

	path := strings.Trim(r.URL.Path, "/")
	switch {
	case path == "pokemon":
		results := make([]string, f.count)
		for id := 1; id <= f.count; id++ {
			results[id-1] = fmt.Sprintf(`{"name":"mon%d","url":"http://%s/pokemon/%d/"}`, id, r.Host, id)
		}
		fmt.Fprintf(w, `{"count":%d,"next":null,"results":[%s]}`, f.count, strings.Join(results, ","))
	case strings.HasPrefix(path, "pokemon/"):
		id, err := strconv.Atoi(strings.TrimPrefix(path, "pokemon/"))
		if err != nil || id < 1 || id > f.count || f.failing[id] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		time.Sleep(2 * time.Millisecond)
		fmt.Fprintf(w, `{"id":%d,"name":"mon%d","types":[{"slot":1,"type":{"name":"fire"}}]}`, id, id)
	case strings.HasPrefix(path, "pokemon-species/"):
		fmt.Fprint(w, `{"id":25,"name":"pikachu","habitat":{"name":"forest"},
			"flavor_text_entries":[{"flavor_text":"Electric\fmouse","language":{"name":"en"}}]}`)
	default:
		http.NotFound(w, r)
	}
}

func newClient(t *testing.T, api *fakeAPI, batchSize int) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client := New(config.API{
		BaseURL:    srv.URL + "/",
		ListLimit:  10000,
		BatchSize:  batchSize,
		BatchDelay: time.Millisecond,
		Timeout:    5 * time.Second,
	}, nil)
	t.Cleanup(client.Close)

	return client, srv
}

func urlsFor(srv *httptest.Server, ids ...int) []string {
	urls := make([]string, len(ids))
	for i, id := range ids {
		urls[i] = fmt.Sprintf("%s/pokemon/%d/", srv.URL, id)
	}
	return urls
}

func sortedIDs(list []model.Pokemon) []int {
	ids := make([]int, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	sort.Ints(ids)
	return ids
}

func TestListPokemon(t *testing.T) {
	client, _ := newClient(t, &fakeAPI{count: 3}, 10)

	refs, err := client.ListPokemon(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "mon2", refs[1].Name)
}

func TestListPokemonFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(config.API{BaseURL: srv.URL, ListLimit: 10, BatchSize: 1, Timeout: time.Second}, nil)
	defer client.Close()
	_, err := client.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestPokemonBatchSkipsFailures(t *testing.T) {
	api := &fakeAPI{count: 10, failing: map[int]bool{7: true}}
	client, srv := newClient(t, api, 4)

	pokemon, err := client.PokemonBatch(context.Background(), urlsFor(srv, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	require.NoError(t, err)

	assert.Len(t, pokemon, 9)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 8, 9, 10}, sortedIDs(pokemon))
}

func TestPokemonBatchIsBounded(t *testing.T) {
	api := &fakeAPI{count: 12}
	client, srv := newClient(t, api, 3)

	pokemon, err := client.PokemonBatch(context.Background(), urlsFor(srv, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12))
	require.NoError(t, err)
	assert.Len(t, pokemon, 12)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.LessOrEqual(t, api.peak, 3)
}

func TestPokemonBatchCancelled(t *testing.T) {
	api := &fakeAPI{count: 10}
	client, srv := newClient(t, api, 2)
	client.delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for api.requests.Load() < 2 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	pokemon, err := client.PokemonBatch(ctx, urlsFor(srv, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, len(pokemon), 10)
}

func TestLoad(t *testing.T) {
	client, _ := newClient(t, &fakeAPI{count: 5, failing: map[int]bool{2: true}}, 2)

	pokemon, err := client.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 5}, sortedIDs(pokemon))
	assert.Equal(t, []string{"fire"}, pokemon[0].TypeNames())
}

func TestSpecies(t *testing.T) {
	client, srv := newClient(t, &fakeAPI{}, 1)

	species, err := client.Species(context.Background(), srv.URL+"/pokemon-species/25/")
	require.NoError(t, err)

	desc, err := species.Description(model.English)
	require.NoError(t, err)
	assert.Equal(t, "Electric mouse", desc)
	assert.Equal(t, "forest", species.HabitatName())
}
