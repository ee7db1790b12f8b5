package uniqueid

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
)

const (
	alphanumerics = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-._"
	idLength      = 18
	keyspace      = "uniqueId"

	reservationTTL = 60 * time.Second
	maxRetries     = 3
)

// ReservationStore is the narrow slice of the shared store the generator
// needs: a set-if-absent primitive to claim an id.
type ReservationStore interface {
	SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Generator issues short, time-ordered, globally-unique order ids: the
// current epoch millis followed by random filler up to 18 characters.
// Each candidate is reserved in the shared store before being handed
// out; a colliding candidate is regenerated up to maxRetries times.
type Generator struct {
	store ReservationStore
}

func NewGenerator(store ReservationStore) *Generator {
	return &Generator{store: store}
}

func (g *Generator) NextID(ctx context.Context) (string, error) {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		candidate, err := randomIdentifier()
		if err != nil {
			return "", &application.OrderIDGenerationError{Err: err}
		}

		reserved, err := g.store.SetIfAbsent(ctx, keyspace+":"+candidate, reservationTTL)
		if err != nil {
			return "", &application.OrderIDGenerationError{Err: err}
		}
		if reserved {
			return candidate, nil
		}
	}

	return "", &application.OrderIDGenerationError{
		Err: errors.New("exhausted attempts to reserve a unique id"),
	}
}

func randomIdentifier() (string, error) {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	suffix, err := randomString(idLength - len(timestamp))
	if err != nil {
		return "", err
	}
	return timestamp + suffix, nil
}

func randomString(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphanumerics)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random index: %w", err)
		}
		out[i] = alphanumerics[n.Int64()]
	}
	return string(out), nil
}
