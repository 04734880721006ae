package redisstate

import (
	"context"
	"fmt"
	"time"

	"obedio-core/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	dedupPrefix    = "obedio:dedup:"
	sequencePrefix = "obedio:seq:"
)

// Stores seq only when it is strictly greater than the stored value.
// Returns 1 when accepted, 0 for a replay.
var advanceScript = redis.NewScript(`
	local key = KEYS[1]
	local seq = tonumber(ARGV[1])
	local seen_ms = ARGV[2]

	local last = tonumber(redis.call('HGET', key, 'seq'))
	if last ~= nil and seq <= last then
		return 0
	end

	redis.call('HSET', key, 'seq', seq, 'seen_ms', seen_ms)
	return 1
`)

type Config struct {
	Addr     string
	Password string
	DB       int
	Window   time.Duration
}

// Store keeps dedup keys and device sequences in Redis so several ingestors
// share one view. Redis expiry is the only clock consulted for the window.
type Store struct {
	client *redis.Client
	window time.Duration
}

func New(cfg Config) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewWithClient(client, cfg.Window)
}

func NewWithClient(client *redis.Client, window time.Duration) *Store {
	if window <= 0 {
		window = 500 * time.Millisecond
	}
	return &Store{client: client, window: window}
}

func (s *Store) Ping(ctx context.Context) error {
	const fn = "Store:Ping"
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, model.ErrStoreUnavailable, err)
	}
	return nil
}

// Seen reports whether key was set inside the window, setting it if not.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	const fn = "Store:Seen"
	set, err := s.client.SetNX(ctx, dedupPrefix+key, 1, s.window).Result()
	if err != nil {
		return false, fmt.Errorf("%s:%w:%w", fn, model.ErrStoreUnavailable, err)
	}
	return !set, nil
}

func (s *Store) Advance(ctx context.Context, deviceID string, seq int64, at time.Time) (bool, error) {
	const fn = "Store:Advance"
	accepted, err := advanceScript.Run(ctx, s.client, []string{sequencePrefix + deviceID}, seq, at.UnixMilli()).Int64()
	if err != nil {
		return false, fmt.Errorf("%s:%w:%w", fn, model.ErrStoreUnavailable, err)
	}
	return accepted == 1, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
