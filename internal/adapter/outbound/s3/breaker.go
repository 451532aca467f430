package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/port/outbound"
)

// BreakerConfig configures the circuit breaker in front of the bucket.
type BreakerConfig struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
	// OnStateChange receives the new state: 0 closed, 1 half-open, 2 open.
	OnStateChange func(name string, state int)
}

// Breaker fails object store calls fast while the bucket keeps failing.
// Calls are never retried.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

// NewBreaker creates a breaker shared by the guarded adapters.
func NewBreaker(cfg BreakerConfig, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: 1,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.MaxFailures
			},
			IsSuccessful: func(err error) bool {
				// A caller giving up says nothing about the bucket.
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Object store breaker state changed",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
				if cfg.OnStateChange != nil {
					cfg.OnStateChange(name, int(to))
				}
			},
		}),
	}
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) execute(fn func() (any, error)) (any, error) {
	v, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", outbound.ErrBackendUnavailable, err)
	}
	return v, err
}

// GuardedObjectStore routes writes through a Breaker.
type GuardedObjectStore struct {
	next    outbound.ObjectStoragePort
	breaker *Breaker
}

// NewGuardedObjectStore wraps next with breaker.
func NewGuardedObjectStore(next outbound.ObjectStoragePort, breaker *Breaker) *GuardedObjectStore {
	return &GuardedObjectStore{next: next, breaker: breaker}
}

func (g *GuardedObjectStore) Put(ctx context.Context, in *outbound.PutObjectInput) error {
	_, err := g.breaker.execute(func() (any, error) {
		return nil, g.next.Put(ctx, in)
	})
	return err
}

// GetPresignedURL is signed locally and does not touch the breaker.
func (g *GuardedObjectStore) GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error) {
	return g.next.GetPresignedURL(ctx, key, duration)
}

// GuardedPicker routes random picks through a Breaker.
type GuardedPicker struct {
	next    outbound.ItemPickerPort
	breaker *Breaker
}

// NewGuardedPicker wraps next with breaker.
func NewGuardedPicker(next outbound.ItemPickerPort, breaker *Breaker) *GuardedPicker {
	return &GuardedPicker{next: next, breaker: breaker}
}

func (g *GuardedPicker) PickUniformRandom(ctx context.Context, filter outbound.ItemFilter) (*model.Item, error) {
	v, err := g.breaker.execute(func() (any, error) {
		return g.next.PickUniformRandom(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	item, _ := v.(*model.Item)
	return item, nil
}

var (
	_ outbound.ObjectStoragePort = (*GuardedObjectStore)(nil)
	_ outbound.ItemPickerPort    = (*GuardedPicker)(nil)
)
