package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	k "obedio-core/internal/kafka"

	"github.com/segmentio/kafka-go"
)

var (
	ErrReadMessage  = errors.New("error reading message")
	ErrParseMessage = errors.New("error parsing message")
)

// DeviceState is the last accepted press per device.
type DeviceState struct {
	LastSequence int64
	LastSeenAt   time.Time
}

type Config struct {
	Brokers     []string
	Topic       string
	ReadTimeout time.Duration
}

type StateCache struct {
	brokers     []string
	readTimeout time.Duration
	reader      k.Reader

	mu    sync.Mutex
	store map[string]DeviceState
}

// New builds a cache. Without brokers the cache starts empty and Hydrate
// is a no-op.
func New(cfg Config) *StateCache {
	c := &StateCache{
		store:       make(map[string]DeviceState),
		brokers:     cfg.Brokers,
		readTimeout: cfg.ReadTimeout,
	}
	if c.readTimeout == 0 {
		c.readTimeout = 5 * time.Second
	}
	if len(cfg.Brokers) > 0 && cfg.Topic != "" {
		c.reader = k.NewReader(cfg.Brokers, cfg.Topic, "")
	}
	return c
}

func (c *StateCache) Get(deviceID string) (DeviceState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, exists := c.store[deviceID]
	return state, exists
}

func (c *StateCache) Set(deviceID string, state DeviceState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[deviceID] = state
}

// Advance records seq for deviceID if it is strictly greater than the last
// accepted sequence. It reports whether the sequence was accepted.
func (c *StateCache) Advance(_ context.Context, deviceID string, seq int64, at time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, exists := c.store[deviceID]
	if exists && seq <= state.LastSequence {
		return false, nil
	}
	c.store[deviceID] = DeviceState{LastSequence: seq, LastSeenAt: at}
	return true, nil
}

func (c *StateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}

func (c *StateCache) waitForBroker(ctx context.Context, maxWait time.Duration, interval time.Duration) error {
	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		for _, broker := range c.brokers {
			dialCtx, cancel := context.WithTimeout(ctx, interval)
			conn, err := kafka.DialContext(dialCtx, "tcp", broker)
			cancel()
			if err == nil {
				conn.Close()
				slog.InfoContext(ctx, "Broker is ready", "broker", broker)
				return nil
			}
			slog.InfoContext(ctx, "Broker not ready", "broker", broker, "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("broker not reachable after %s", maxWait)
}

// Hydrate replays the journal topic into the cache. Blocking operation.
func (c *StateCache) Hydrate(ctx context.Context) error {
	if c.reader == nil {
		return nil
	}
	defer c.reader.Close()

	slog.InfoContext(ctx, "Pinging broker to ensure connectivity...")
	if err := c.waitForBroker(ctx, time.Second*30, time.Second*5); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Starting cache hydration...")
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Cache hydrate stopped...")
			return ctx.Err()
		default:
			done, err := c.ReadMessage(ctx)
			if errors.Is(err, ErrParseMessage) {
				slog.ErrorContext(ctx, "Skipping unparseable journal record", "error", err)
				continue
			}
			if err != nil {
				return err
			}
			if done {
				slog.InfoContext(ctx, "Cache hydration complete", "devices", c.Len())
				return nil
			}
		}
	}
}

// ReadMessage applies one journal record. done is true once the topic is
// drained or the read deadline passes.
func (c *StateCache) ReadMessage(ctx context.Context) (bool, error) {
	const fn = "StateCache:ReadMessage"
	readCtx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()
	m, err := c.reader.ReadMessage(readCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return true, nil
		}
		return false, fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}

	var record k.StructuredConnectRecord
	if err := json.Unmarshal(m.Value, &record); err != nil {
		return false, fmt.Errorf("%s:%w:%w", fn, ErrParseMessage, err)
	}

	// Compaction keeps the latest record per key, but replays may still
	// carry older entries ahead of it.
	c.Advance(ctx, record.Payload.DeviceID, record.Payload.SequenceNumber, record.Payload.Time())

	return c.reader.Lag() == 0, nil
}
