package favorites

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wyu6609/pokedex/pkg/storage"
)

const owner = "ash"

func TestAllEmpty(t *testing.T) {
	s := New(NewMemoryKV(), nil)
	assert.Equal(t, []int{}, s.All(context.Background(), owner))
}

func TestToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryKV(), zap.NewNop())
	s.Add(ctx, owner, 1)
	s.Add(ctx, owner, 4)
	original := s.All(ctx, owner)

	ids, added := s.Toggle(ctx, owner, 25)
	assert.True(t, added)
	assert.Equal(t, []int{1, 4, 25}, ids)

	ids, added = s.Toggle(ctx, owner, 25)
	assert.False(t, added)
	assert.Equal(t, original, ids)
	assert.Equal(t, original, s.All(ctx, owner))
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryKV(), nil)

	s.Add(ctx, owner, 5)
	ids := s.Add(ctx, owner, 5)

	assert.Equal(t, []int{5}, ids)
	assert.Equal(t, []int{5}, s.All(ctx, owner))
	assert.True(t, s.Contains(ctx, owner, 5))
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryKV(), nil)

	s.Add(ctx, owner, 7)
	assert.Equal(t, []int{}, s.Remove(ctx, owner, 7))
	assert.Equal(t, []int{}, s.Remove(ctx, owner, 7))
	assert.False(t, s.Contains(ctx, owner, 7))
}

func TestOwnersAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryKV(), nil)

	s.Add(ctx, "ash", 25)
	s.Add(ctx, "misty", 120)

	assert.Equal(t, []int{25}, s.All(ctx, "ash"))
	assert.Equal(t, []int{120}, s.All(ctx, "misty"))
}

func TestMalformedDataReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, owner, Key, "{not json"))
	s := New(kv, nil)

	assert.Equal(t, []int{}, s.All(ctx, owner))

	ids, added := s.Toggle(ctx, owner, 3)
	assert.True(t, added)
	assert.Equal(t, []int{3}, ids)
}

func TestDuplicatesInStoredDataCollapse(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, owner, Key, "[1,1,2,1]"))

	assert.Equal(t, []int{1, 2}, New(kv, nil).All(ctx, owner))
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (brokenKV) Set(context.Context, string, string, string) error {
	return errors.New("disk on fire")
}

func (brokenKV) Delete(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestBackendErrorsFailOpen(t *testing.T) {
	ctx := context.Background()
	s := New(brokenKV{}, nil)

	assert.Equal(t, []int{}, s.All(ctx, owner))
	ids, added := s.Toggle(ctx, owner, 9)
	assert.True(t, added)
	assert.Equal(t, []int{9}, ids)
	s.Clear(ctx, owner)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryKV(), nil)
	s.Add(ctx, owner, 1)
	s.Add(ctx, "misty", 120)

	s.Clear(ctx, owner)
	assert.Equal(t, []int{}, s.All(ctx, owner))
	assert.Equal(t, []int{120}, s.All(ctx, "misty"))
}

func TestPersistsToStorage(t *testing.T) {
	ctx := context.Background()
	db, err := storage.New(ctx, filepath.Join(t.TempDir(), "pokedex.db"))
	require.NoError(t, err)
	defer db.Close()

	New(db, nil).Toggle(ctx, owner, 150)

	raw, ok, err := db.Get(ctx, owner, Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, "[150]", raw)

	assert.Equal(t, []int{150}, New(db, nil).All(ctx, owner))
}

func TestConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryKV(), nil)

	var wg sync.WaitGroup
	for id := 1; id <= 50; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.Add(ctx, owner, id)
		}(id)
	}
	wg.Wait()

	assert.Len(t, s.All(ctx, owner), 50)
}
