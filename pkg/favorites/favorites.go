package favorites

import (
	"context"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Key is the fixed key the favorites list is stored under.
const Key = "pokemonFavorites"

type KV interface {
	Get(ctx context.Context, scope string, key string) (string, bool, error)
	Set(ctx context.Context, scope string, key string, value string) error
	Delete(ctx context.Context, scope string, key string) error
}

// Store keeps one favorites set per owner. Reads fail open: anything missing or
// unreadable is an empty set. One mutex covers every read-modify-write.
type Store struct {
	kv     KV
	logger *zap.Logger
	mu     sync.Mutex
}

func New(kv KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		kv:     kv,
		logger: logger,
	}
}

func (s *Store) All(ctx context.Context, owner string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, owner)
}

func (s *Store) Contains(ctx context.Context, owner string, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return indexOf(s.load(ctx, owner), id) >= 0
}

// Add is a no-op when id is already a favorite.
func (s *Store) Add(ctx context.Context, owner string, id int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.load(ctx, owner)
	if indexOf(ids, id) >= 0 {
		return ids
	}

	ids = append(ids, id)
	s.save(ctx, owner, ids)
	return ids
}

// Remove is a no-op when id is not a favorite.
func (s *Store) Remove(ctx context.Context, owner string, id int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.load(ctx, owner)
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}

	ids = append(ids[:i], ids[i+1:]...)
	s.save(ctx, owner, ids)
	return ids
}

// Toggle removes id if present and adds it otherwise. The new set is persisted
// before Toggle returns.
func (s *Store) Toggle(ctx context.Context, owner string, id int) ([]int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.load(ctx, owner)
	added := false
	if i := indexOf(ids, id); i >= 0 {
		ids = append(ids[:i], ids[i+1:]...)
	} else {
		ids = append(ids, id)
		added = true
	}

	s.save(ctx, owner, ids)
	return ids, added
}

// Clear drops every favorite of owner.
func (s *Store) Clear(ctx context.Context, owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.kv.Delete(ctx, owner, Key)
	if err != nil {
		s.logger.Error("error while clearing favorites", zap.String("owner", owner), zap.Error(err))
	}
}

func (s *Store) load(ctx context.Context, owner string) []int {
	raw, ok, err := s.kv.Get(ctx, owner, Key)
	if err != nil {
		s.logger.Warn("error while reading favorites", zap.String("owner", owner), zap.Error(err))
		return []int{}
	}
	if !ok || raw == "" {
		return []int{}
	}

	var stored []int
	err = json.Unmarshal([]byte(raw), &stored)
	if err != nil {
		s.logger.Warn("discarding malformed favorites", zap.String("owner", owner), zap.Error(err))
		return []int{}
	}

	ids := make([]int, 0, len(stored))
	for _, id := range stored {
		if indexOf(ids, id) < 0 {
			ids = append(ids, id)
		}
	}

	return ids
}

func (s *Store) save(ctx context.Context, owner string, ids []int) {
	data, err := json.Marshal(ids)
	if err != nil {
		s.logger.Error("error while encoding favorites", zap.String("owner", owner), zap.Error(err))
		return
	}

	err = s.kv.Set(ctx, owner, Key, string(data))
	if err != nil {
		s.logger.Error("error while saving favorites", zap.String("owner", owner), zap.Error(err))
	}
}

func indexOf(ids []int, id int) int {
	for i, other := range ids {
		if other == id {
			return i
		}
	}

	return -1
}
