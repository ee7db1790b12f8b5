package uniqueid_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/uniqueid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedStore answers SetIfAbsent from a fixed script of outcomes and
// records every key it was asked to reserve.
type scriptedStore struct {
	outcomes []bool
	err      error
	keys     []string
}

func (s *scriptedStore) SetIfAbsent(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return false, s.err
	}
	if len(s.outcomes) == 0 {
		return false, nil
	}
	outcome := s.outcomes[0]
	s.outcomes = s.outcomes[1:]
	return outcome, nil
}

func TestGenerator_IDShape(t *testing.T) {
	store := &scriptedStore{outcomes: []bool{true}}
	gen := uniqueid.NewGenerator(store)

	before := time.Now().UnixMilli()
	id, err := gen.NextID(context.Background())
	after := time.Now().UnixMilli()

	require.NoError(t, err)
	assert.Len(t, id, 18)

	// the id starts with the generation timestamp in epoch millis
	millis, err := strconv.ParseInt(id[:13], 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, millis, before)
	assert.LessOrEqual(t, millis, after)
}

func TestGenerator_ReservesUnderKeyspace(t *testing.T) {
	store := &scriptedStore{outcomes: []bool{true}}
	gen := uniqueid.NewGenerator(store)

	id, err := gen.NextID(context.Background())

	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	assert.Equal(t, "uniqueId:"+id, store.keys[0])
}

func TestGenerator_RetriesOnCollision(t *testing.T) {
	store := &scriptedStore{outcomes: []bool{false, false, true}}
	gen := uniqueid.NewGenerator(store)

	id, err := gen.NextID(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, store.keys, 3)
	// every attempt drew a fresh candidate
	assert.True(t, strings.HasSuffix(store.keys[2], id))
}

func TestGenerator_ExhaustedRetries(t *testing.T) {
	store := &scriptedStore{}
	gen := uniqueid.NewGenerator(store)

	id, err := gen.NextID(context.Background())

	require.Error(t, err)
	assert.Empty(t, id)
	var genErr *application.OrderIDGenerationError
	assert.ErrorAs(t, err, &genErr)
	assert.Len(t, store.keys, 4, "initial attempt plus three retries")
}

func TestGenerator_StoreFailure(t *testing.T) {
	store := &scriptedStore{err: errors.New("redis down")}
	gen := uniqueid.NewGenerator(store)

	id, err := gen.NextID(context.Background())

	require.Error(t, err)
	assert.Empty(t, id)
	var genErr *application.OrderIDGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Err.Error(), "redis down")
	assert.Len(t, store.keys, 1, "a store failure is not retried")
}
