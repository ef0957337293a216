package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wyu6609/pokedex/pkg/config"
	"github.com/wyu6609/pokedex/pkg/model"
)

const progressThreshold = 500

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client reads pokemon from PokéAPI.
type Client struct {
	http      *http.Client
	baseURL   string
	listLimit int
	batchSize int
	delay     time.Duration
	logger    *zap.Logger
}

func New(cfg config.API, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		listLimit: cfg.ListLimit,
		batchSize: max(cfg.BatchSize, 1),
		delay:     cfg.BatchDelay,
		logger:    logger,
	}
}

// Close drops idle keep-alive connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %q: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("got %d from %q: %w", resp.StatusCode, rawURL, ErrUnexpectedStatus)
	}

	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("failed to decode response from %q: %w", rawURL, err)
	}

	return nil
}

// ListPokemon fetches the references to every pokemon in one request.
func (c *Client) ListPokemon(ctx context.Context) ([]model.NamedResource, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.listLimit))
	listURL := c.baseURL + "/pokemon?" + q.Encode()

	var list model.ResourceList
	err := c.get(ctx, listURL, &list)
	if err != nil {
		return nil, fmt.Errorf("error while listing pokemon: %w", err)
	}

	return list.Results, nil
}

func (c *Client) Pokemon(ctx context.Context, rawURL string) (*model.Pokemon, error) {
	var pokemon model.Pokemon
	err := c.get(ctx, rawURL, &pokemon)
	if err != nil {
		return nil, fmt.Errorf("error while getting pokemon: %w", err)
	}

	return &pokemon, nil
}

func (c *Client) Species(ctx context.Context, rawURL string) (*model.Species, error) {
	var species model.Species
	err := c.get(ctx, rawURL, &species)
	if err != nil {
		return nil, fmt.Errorf("error while getting species: %w", err)
	}

	return &species, nil
}

// PokemonBatch fetches every url, a batch at a time. Requests inside a batch
// run concurrently; batches run one after another with a pause in between.
// A failed request only drops its pokemon. The context is checked between
// batches, and on cancellation the pokemon fetched so far are returned along
// with the context's error.
func (c *Client) PokemonBatch(ctx context.Context, urls []string) ([]model.Pokemon, error) {
	results := make([]model.Pokemon, 0, len(urls))
	for start := 0; start < len(urls); start += c.batchSize {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("batch fetch interrupted at %d/%d: %w", start, len(urls), err)
		}

		end := min(start+c.batchSize, len(urls))
		results = append(results, c.fetchBatch(ctx, urls[start:end])...)

		if len(urls) > progressThreshold {
			c.logger.Info("loading pokemon", zap.Int("loaded", len(results)), zap.Int("total", len(urls)))
		}

		if end < len(urls) {
			err := c.pause(ctx)
			if err != nil {
				return results, fmt.Errorf("batch fetch interrupted at %d/%d: %w", end, len(urls), err)
			}
		}
	}

	c.logger.Info("loaded pokemon", zap.Int("loaded", len(results)), zap.Int("requested", len(urls)))
	return results, nil
}

func (c *Client) fetchBatch(ctx context.Context, urls []string) []model.Pokemon {
	fetched := make([]*model.Pokemon, len(urls))

	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			pokemon, err := c.Pokemon(ctx, u)
			if err != nil {
				c.logger.Warn("skipping pokemon", zap.String("url", u), zap.Error(err))
				return nil
			}
			fetched[i] = pokemon
			return nil
		})
	}
	_ = g.Wait()

	batch := make([]model.Pokemon, 0, len(urls))
	for _, pokemon := range fetched {
		if pokemon != nil {
			batch = append(batch, *pokemon)
		}
	}

	return batch
}

func (c *Client) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Load lists every pokemon and fetches their details. Only a failure to list
// is fatal.
func (c *Client) Load(ctx context.Context) ([]model.Pokemon, error) {
	refs, err := c.ListPokemon(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pokemon: %w", err)
	}

	urls := make([]string, len(refs))
	for i, ref := range refs {
		urls[i] = ref.URL
	}

	pokemon, err := c.PokemonBatch(ctx, urls)
	if err != nil {
		return pokemon, fmt.Errorf("failed to load pokemon: %w", err)
	}

	return pokemon, nil
}
