package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"obedio-core/internal/metrics"
	"obedio-core/internal/model"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var (
	ErrConnectTimeout = errors.New("connect timed out")
	ErrPublish        = errors.New("error publishing message")
	ErrSubscribe      = errors.New("error subscribing")
)

// mqttClient is the slice of paho's mqtt.Client this package drives.
type mqttClient interface {
	Connect() mqtt.Token
	Disconnect(quiesce uint)
	IsConnectionOpen() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

type messageHandler interface {
	Topics() []string
	Handle(ctx context.Context, topic string, payload []byte) error
}

type Config struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	QoS            byte
	ConnectTimeout time.Duration
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	// OutboxSize bounds publishes held while disconnected.
	OutboxSize int
	Metrics    *metrics.Metrics
}

type outbound struct {
	topic   string
	payload []byte
}

// Client owns the broker connection. Inbound messages go to the handler;
// outbound messages published while the link is down wait in a bounded
// outbox and are flushed in order on reconnect.
type Client struct {
	cfg     Config
	client  mqttClient
	handler messageHandler

	ctx          context.Context
	reconnecting atomic.Bool
	closed       atomic.Bool

	mu      sync.Mutex
	outbox  []outbound
	sending bool
}

func New(cfg Config, handler messageHandler) *Client {
	c := newClient(cfg, handler)
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetCleanSession(true).
		SetConnectTimeout(c.cfg.ConnectTimeout).
		SetAutoReconnect(false).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			c.connectionLost(err)
		})
	c.client = mqtt.NewClient(opts)
	return c
}

func newClient(cfg Config, handler messageHandler) *Client {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 30 * time.Second
	}
	if cfg.BackoffInitial <= 0 {
		cfg.BackoffInitial = 500 * time.Millisecond
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = 30 * time.Second
	}
	if cfg.OutboxSize <= 0 {
		cfg.OutboxSize = 1000
	}
	return &Client{
		cfg:     cfg,
		handler: handler,
		ctx:     context.Background(),
	}
}

func (c *Client) Connected() bool {
	return c.client.IsConnectionOpen()
}

// Connect blocks until the broker accepts the connection or ctx is done.
// ctx also bounds the lifetime of inbound message handling and of every
// later reconnect attempt.
func (c *Client) Connect(ctx context.Context) error {
	c.ctx = ctx
	return c.connect(ctx)
}

func (c *Client) connect(ctx context.Context) error {
	const fn = "Client:Connect"
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.BackoffInitial
	b.MaxInterval = c.cfg.BackoffMax
	b.MaxElapsedTime = 0

	op := func() error {
		token := c.client.Connect()
		if !token.WaitTimeout(c.cfg.ConnectTimeout) {
			return ErrConnectTimeout
		}
		return token.Error()
	}
	notify := func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "MQTT connect failed, retrying", "broker", c.cfg.Broker, "wait", wait, "error", err)
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, model.ErrTransportUnavailable, err)
	}
	slog.InfoContext(ctx, "MQTT connected", "broker", c.cfg.Broker, "client_id", c.cfg.ClientID)

	if err := c.subscribe(ctx); err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	c.flush(ctx)
	return nil
}

func (c *Client) subscribe(ctx context.Context) error {
	const fn = "Client:subscribe"
	if c.handler == nil {
		return nil
	}
	for _, topic := range c.handler.Topics() {
		token := c.client.Subscribe(topic, c.cfg.QoS, c.onMessage)
		if !token.WaitTimeout(c.cfg.ConnectTimeout) {
			return fmt.Errorf("%s:%w:%w", fn, ErrSubscribe, ErrConnectTimeout)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("%s:%w:%w", fn, ErrSubscribe, err)
		}
		slog.InfoContext(ctx, "Subscribed", "topic", topic)
	}
	return nil
}

func (c *Client) onMessage(_ mqtt.Client, msg mqtt.Message) {
	if err := c.handler.Handle(c.ctx, msg.Topic(), msg.Payload()); err != nil {
		slog.ErrorContext(c.ctx, "Error handling message", "topic", msg.Topic(), "error", err)
	}
}

func (c *Client) connectionLost(err error) {
	slog.WarnContext(c.ctx, "MQTT connection lost", "error", err)
	if c.closed.Load() || !c.reconnecting.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.reconnecting.Store(false)
		if err := c.connect(c.ctx); err != nil && c.ctx.Err() == nil {
			slog.ErrorContext(c.ctx, "MQTT reconnect abandoned", "error", err)
		}
	}()
}

func (c *Client) Disconnect() {
	c.closed.Store(true)
	if c.client.IsConnectionOpen() {
		c.client.Disconnect(250)
	}
	c.mu.Lock()
	pending := len(c.outbox)
	c.mu.Unlock()
	slog.Info("MQTT disconnected", "outbox_pending", pending)
}

// Publish sends payload as JSON. Messages go out in order through the
// outbox; while another caller is sending, or the link is down, Publish
// queues the message and returns without waiting.
func (c *Client) Publish(ctx context.Context, topic string, payload any) error {
	const fn = "Client:Publish"
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrPublish, err)
	}

	c.mu.Lock()
	c.enqueue(ctx, outbound{topic: topic, payload: data})
	if c.sending || !c.client.IsConnectionOpen() {
		c.mu.Unlock()
		return nil
	}
	c.sending = true
	c.mu.Unlock()

	c.drain(ctx)
	return nil
}

func (c *Client) send(msg outbound) error {
	token := c.client.Publish(msg.topic, c.cfg.QoS, false, msg.payload)
	if !token.WaitTimeout(c.cfg.ConnectTimeout) {
		return ErrConnectTimeout
	}
	return token.Error()
}

// Must be called with c.mu held.
func (c *Client) enqueue(ctx context.Context, msg outbound) {
	if len(c.outbox) >= c.cfg.OutboxSize {
		dropped := c.outbox[0]
		c.outbox = c.outbox[1:]
		c.cfg.Metrics.OutboxDropped()
		slog.WarnContext(ctx, "Outbox full, dropping oldest message", "topic", dropped.topic)
	}
	c.outbox = append(c.outbox, msg)
}

// drain sends the outbox head first without holding c.mu, stopping at the
// first failure. The caller must have set c.sending; drain clears it.
func (c *Client) drain(ctx context.Context) int {
	sent := 0
	for {
		c.mu.Lock()
		if len(c.outbox) == 0 {
			c.sending = false
			c.mu.Unlock()
			return sent
		}
		msg := c.outbox[0]
		c.outbox = c.outbox[1:]
		c.mu.Unlock()

		if err := c.send(msg); err != nil {
			c.mu.Lock()
			if len(c.outbox) < c.cfg.OutboxSize {
				c.outbox = append([]outbound{msg}, c.outbox...)
			} else {
				c.cfg.Metrics.OutboxDropped()
			}
			pending := len(c.outbox)
			c.sending = false
			c.mu.Unlock()
			slog.WarnContext(ctx, "Publish failed, queued for retry", "topic", msg.topic, "pending", pending, "error", err)
			return sent
		}
		sent++
	}
}

// flush drains whatever queued up while the link was down.
func (c *Client) flush(ctx context.Context) {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return
	}
	c.sending = true
	c.mu.Unlock()

	if sent := c.drain(ctx); sent > 0 {
		slog.InfoContext(ctx, "Outbox flushed", "sent", sent)
	}
}

func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.outbox)
}

type ackCommand struct {
	Command   string `json:"command"`
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
}

// Ack tells a button its press became a request.
func (c *Client) Ack(ctx context.Context, deviceID, requestID string) error {
	return c.Publish(ctx, CommandTopic(deviceID), ackCommand{
		Command:   "ack",
		RequestID: requestID,
		Status:    "received",
	})
}
