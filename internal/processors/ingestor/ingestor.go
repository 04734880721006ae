package ingestor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"obedio-core/internal/clock"
	"obedio-core/internal/dnd"
	"obedio-core/internal/lifecycle"
	"obedio-core/internal/metrics"
	"obedio-core/internal/model"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeAccepted     Outcome = "accepted"
	OutcomeDuplicate    Outcome = "duplicate"
	OutcomeReplayed     Outcome = "replayed"
	OutcomeInvalid      Outcome = "invalid"
	OutcomeDeferred     Outcome = "deferred"
	OutcomeBackpressure Outcome = "backpressure"
	OutcomeFailed       Outcome = "failed"
)

// IngestResult is returned for every press. It never carries a panic or a
// bare error across the ingestion boundary.
type IngestResult struct {
	Outcome   Outcome               `json:"outcome"`
	Action    Action                `json:"action,omitempty"`
	RequestID string                `json:"requestId,omitempty"`
	Request   *model.ServiceRequest `json:"request,omitempty"`
	DND       *dnd.ToggleResult     `json:"dnd,omitempty"`
	Reason    string                `json:"reason,omitempty"`
	Err       error                 `json:"-"`
}

// NeedsAttention separates results an operator should see from the ones
// that are silently absorbed.
func (r IngestResult) NeedsAttention() bool {
	switch r.Outcome {
	case OutcomeDuplicate, OutcomeReplayed:
		return false
	case OutcomeAccepted:
		return r.DND != nil && r.DND.Divergent()
	}
	return true
}

func result(outcome Outcome, err error) IngestResult {
	r := IngestResult{Outcome: outcome, Err: err}
	if err != nil {
		r.Reason = err.Error()
	}
	return r
}

type sequenceGuard interface {
	Advance(ctx context.Context, deviceID string, seq int64, at time.Time) (bool, error)
}

type deduplicator interface {
	Seen(ctx context.Context, key string) (bool, error)
}

type guestResolver interface {
	ResolveGuest(ctx context.Context, locationID string) (*model.Guest, error)
}

type records interface {
	GetLocation(ctx context.Context, id string) (model.Location, error)
	GetGuest(ctx context.Context, id string) (model.Guest, error)
	AppendActivity(ctx context.Context, e model.ActivityEntry) error
}

type dndToggler interface {
	ToggleDND(ctx context.Context, locationID string, status bool, guestID *string) dnd.ToggleResult
	FlipDND(ctx context.Context, locationID string, guestID *string) dnd.ToggleResult
}

type requestCreator interface {
	Create(ctx context.Context, p lifecycle.CreateParams) (model.ServiceRequest, error)
}

type journal interface {
	Record(ctx context.Context, e model.DeviceEvent)
}

type acker interface {
	Ack(ctx context.Context, deviceID, requestID string) error
}

type Config struct {
	Sequences sequenceGuard
	Dedup     deduplicator
	Resolver  guestResolver
	Records   records
	DND       dndToggler
	Requests  requestCreator
	// Journal and Acker are optional.
	Journal journal
	Acker   acker
	Retry   *RetryQueue
	// BackpressureThreshold is the retry depth at which non-emergency
	// presses are refused. Zero disables it.
	BackpressureThreshold int
	Clock                 clock.Clock
	Metrics               *metrics.Metrics
}

type Ingestor struct {
	sequences sequenceGuard
	dedup     deduplicator
	resolver  guestResolver
	records   records
	dnd       dndToggler
	requests  requestCreator
	journal   journal
	acker     acker
	retry     *RetryQueue
	threshold int
	clock     clock.Clock
	metrics   *metrics.Metrics
}

func New(cfg Config) *Ingestor {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	return &Ingestor{
		sequences: cfg.Sequences,
		dedup:     cfg.Dedup,
		resolver:  cfg.Resolver,
		records:   cfg.Records,
		dnd:       cfg.DND,
		requests:  cfg.Requests,
		journal:   cfg.Journal,
		acker:     cfg.Acker,
		retry:     cfg.Retry,
		threshold: cfg.BackpressureThreshold,
		clock:     cfg.Clock,
		metrics:   cfg.Metrics,
	}
}

// SetAcker wires the device acknowledgement sender once the transport
// exists.
func (i *Ingestor) SetAcker(a acker) {
	i.acker = a
}

// Ingest runs one press through validation, replay and duplicate checks,
// classification and dispatch. Events for one device must be ingested
// sequentially; the Pipeline guarantees that.
func (i *Ingestor) Ingest(ctx context.Context, e model.DeviceEvent) IngestResult {
	res := i.ingest(ctx, e)
	i.record(ctx, res, e)
	return res
}

func (i *Ingestor) ingest(ctx context.Context, e model.DeviceEvent) IngestResult {
	if err := Validate(e); err != nil {
		return result(OutcomeInvalid, err)
	}
	class, err := Classify(e.Button, e.PressType)
	if err != nil {
		return result(OutcomeInvalid, err)
	}

	// Checked before the sequence advances so the device may resend.
	if !class.Emergency() && i.threshold > 0 && i.retry != nil && i.retry.Depth() >= i.threshold {
		res := result(OutcomeBackpressure, model.ErrBackpressure)
		res.Action = class.Action
		return res
	}

	accepted, err := i.sequences.Advance(ctx, e.DeviceID, e.SequenceNumber, e.Timestamp)
	if err != nil {
		slog.ErrorContext(ctx, "Sequence guard unavailable, accepting event", "device_id", e.DeviceID, "error", err)
	} else if !accepted {
		res := result(OutcomeReplayed, model.ErrReplayedEvent)
		res.Action = class.Action
		return res
	}
	if i.journal != nil {
		i.journal.Record(ctx, e)
	}

	dup, err := i.dedup.Seen(ctx, class.DedupKey(e.LocationID))
	if err != nil {
		slog.ErrorContext(ctx, "Dedup window unavailable, accepting event", "device_id", e.DeviceID, "error", err)
	} else if dup {
		res := result(OutcomeDuplicate, model.ErrDuplicateEvent)
		res.Action = class.Action
		return res
	}

	j := job{Event: e, Class: class}
	if class.CreatesRequest() {
		j.RequestID = uuid.NewString()
	}
	res, retry := i.dispatch(ctx, j)
	if !retry {
		return res
	}
	if i.retry == nil {
		return res
	}
	if err := i.retry.Push(j); err != nil {
		res.Err = fmt.Errorf("%w: %w", err, res.Err)
		res.Reason = res.Err.Error()
		return res
	}
	deferred := result(OutcomeDeferred, res.Err)
	deferred.Action = class.Action
	deferred.RequestID = j.RequestID
	return deferred
}

// dispatch resolves and applies a classified press. The bool is true when
// the failure left nothing applied and the job may be retried.
func (i *Ingestor) dispatch(ctx context.Context, j job) (IngestResult, bool) {
	e := j.Event
	failed := func(err error) IngestResult {
		res := result(OutcomeFailed, err)
		res.Action = j.Class.Action
		res.RequestID = j.RequestID
		return res
	}

	location, err := i.records.GetLocation(ctx, e.LocationID)
	if errors.Is(err, model.ErrNotFound) {
		res := result(OutcomeInvalid, fmt.Errorf("%w: unknown location %s", model.ErrInvalidEvent, e.LocationID))
		res.Action = j.Class.Action
		return res, false
	}
	if err != nil {
		return failed(err), true
	}
	guest, err := i.resolveGuest(ctx, e)
	if err != nil {
		return failed(err), true
	}
	var guestID *string
	if guest != nil {
		guestID = model.StringPtr(guest.ID)
	}

	res := IngestResult{Outcome: OutcomeAccepted, Action: j.Class.Action}

	switch j.Class.Action {
	case ActionLights:
		i.appendActivity(ctx, model.ActivityEntry{
			Type:       "device",
			Action:     string(ActionLights),
			LocationID: model.StringPtr(location.ID),
			GuestID:    guestID,
			Details:    fmt.Sprintf("Lights toggled in %s", displayName(location)),
			Metadata:   map[string]string{"device_id": e.DeviceID},
		})
		return res, false

	case ActionDND:
		toggle := i.dnd.FlipDND(ctx, location.ID, guestID)
		if !toggle.LocationUpdated {
			return failed(toggle.Err), true
		}
		res.DND = &toggle
		return res, false
	}

	notes := buildNotes(location, e, j.Class)
	if location.DoNotDisturb {
		toggle := i.dnd.ToggleDND(ctx, location.ID, false, guestID)
		if toggle.LocationUpdated {
			notes = "DND REMOVED - " + notes
		}
		res.DND = &toggle
	}

	r, err := i.requests.Create(ctx, lifecycle.CreateParams{
		ID:          j.RequestID,
		LocationID:  location.ID,
		Guest:       guest,
		RequestType: j.Class.RequestType,
		Priority:    j.Class.Priority,
		Notes:       notes,
	})
	if err != nil {
		return failed(err), !errors.Is(err, lifecycle.ErrInvalidRequest)
	}
	res.RequestID = r.ID
	res.Request = &r

	if i.acker != nil {
		if err := i.acker.Ack(ctx, e.DeviceID, r.ID); err != nil {
			slog.WarnContext(ctx, "Error acknowledging device", "device_id", e.DeviceID, "request_id", r.ID, "error", err)
		}
	}
	return res, false
}

// An explicit guest on the event wins when it exists; otherwise the
// resolver picks.
func (i *Ingestor) resolveGuest(ctx context.Context, e model.DeviceEvent) (*model.Guest, error) {
	if e.GuestID != nil && *e.GuestID != "" {
		g, err := i.records.GetGuest(ctx, *e.GuestID)
		if err == nil {
			return &g, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
	}
	return i.resolver.ResolveGuest(ctx, e.LocationID)
}

func displayName(l model.Location) string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func buildNotes(l model.Location, e model.DeviceEvent, c Classification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s requested from %s", c.Label, displayName(l))
	b.WriteString("\n\nDevice Details:")
	fmt.Fprintf(&b, "\n- Button: %s", e.Button)
	fmt.Fprintf(&b, "\n- Press Type: %s", e.PressType)
	fmt.Fprintf(&b, "\n- Battery: %d%%", e.Battery)
	fmt.Fprintf(&b, "\n- Signal: %d dBm", e.RSSI)
	fmt.Fprintf(&b, "\n- Firmware: %s", orUnknown(e.FirmwareVersion))
	return b.String()
}

func (i *Ingestor) appendActivity(ctx context.Context, entry model.ActivityEntry) {
	entry.ID = uuid.NewString()
	entry.At = i.clock.Now()
	if err := i.records.AppendActivity(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "Error appending activity", "action", entry.Action, "error", err)
	}
}

func (i *Ingestor) record(ctx context.Context, res IngestResult, e model.DeviceEvent) {
	i.metrics.DeviceEvent(string(res.Outcome))
	attrs := []any{
		"outcome", res.Outcome,
		"device_id", e.DeviceID,
		"location_id", e.LocationID,
		"sequence", e.SequenceNumber,
	}
	if res.Action != "" {
		attrs = append(attrs, "action", res.Action)
	}
	if res.RequestID != "" {
		attrs = append(attrs, "request_id", res.RequestID)
	}
	if res.Err != nil {
		attrs = append(attrs, "error", res.Err)
	}
	switch res.Outcome {
	case OutcomeAccepted, OutcomeDuplicate, OutcomeReplayed, OutcomeInvalid:
		if res.NeedsAttention() && res.Outcome == OutcomeAccepted {
			slog.WarnContext(ctx, "Device event accepted with DND divergence", attrs...)
			return
		}
		slog.InfoContext(ctx, "Device event processed", attrs...)
	case OutcomeDeferred, OutcomeBackpressure:
		slog.WarnContext(ctx, "Device event held back", attrs...)
	default:
		slog.ErrorContext(ctx, "Device event failed", attrs...)
	}
}

func (i *Ingestor) recordRetry(ctx context.Context, res IngestResult, j job) {
	if res.Err != nil {
		i.metrics.DeviceEvent(string(OutcomeFailed))
		slog.ErrorContext(ctx, "Deferred device event dropped",
			"device_id", j.Event.DeviceID,
			"request_id", j.RequestID,
			"attempts", j.Attempts,
			"error", res.Err,
		)
		return
	}
	i.metrics.DeviceEvent("recovered")
	slog.InfoContext(ctx, "Deferred device event dispatched",
		"device_id", j.Event.DeviceID,
		"request_id", res.RequestID,
		"attempts", j.Attempts,
	)
}
