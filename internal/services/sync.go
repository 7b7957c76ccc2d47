package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"

	"github.com/surya-health-tech/Glucose-Curve/internal/api"
	"github.com/surya-health-tech/Glucose-Curve/internal/logging"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/repositories/outbox"
	"github.com/surya-health-tech/Glucose-Curve/internal/repositories/watermark"
)

// Sync lifecycle states. The machine sits in StateIdle between attempts;
// StateCommitted and StateFailed are pass-through outcomes of one attempt.
const (
	StateIdle       = "idle"
	StateFetching   = "fetching"
	StateSubmitting = "submitting"
	StateCommitted  = "committed"
	StateFailed     = "failed"
)

// Sync lifecycle events.
const (
	eventBegin  = "begin"
	eventSubmit = "submit"
	eventCommit = "commit"
	eventFail   = "fail"
	eventReset  = "reset"
)

// ErrSyncInFlight is returned when Sync is called while another attempt is
// still running.
var ErrSyncInFlight = errors.New("sync already in flight")

var timeNow = time.Now

// SyncReport summarizes one sync attempt for the caller.
type SyncReport struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Events      int
	Records     int
	Dropped     int
	Counts      map[string]int64
	ServerTime  string

	// Committed means the backend durably stored the payload. DrainFailed
	// flags the rare case where the outbox could not be cleared afterwards;
	// the events will be resubmitted and deduped on the next attempt.
	Committed   bool
	DrainFailed bool
}

// SyncService drives one sync attempt end to end: snapshot the outbox,
// fetch the delta, submit one payload, and on acknowledgement advance the
// watermark and drain the outbox. A failed attempt mutates nothing, so the
// caller can simply invoke Sync again.
type SyncService struct {
	machine   *fsm.FSM
	outbox    outbox.Repository
	watermark watermark.Repository
	fetcher   *DeltaFetcher
	client    api.Client
	device    string
	log       logging.Logger
}

func NewSyncService(
	outboxRepo outbox.Repository,
	watermarkRepo watermark.Repository,
	fetcher *DeltaFetcher,
	client api.Client,
	device string,
	log logging.Logger,
) *SyncService {
	s := &SyncService{
		outbox:    outboxRepo,
		watermark: watermarkRepo,
		fetcher:   fetcher,
		client:    client,
		device:    device,
		log:       log.With("module", "sync_service"),
	}

	s.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventBegin, Src: []string{StateIdle}, Dst: StateFetching},
			{Name: eventSubmit, Src: []string{StateFetching}, Dst: StateSubmitting},
			{Name: eventCommit, Src: []string{StateSubmitting}, Dst: StateCommitted},
			{Name: eventFail, Src: []string{StateFetching, StateSubmitting}, Dst: StateFailed},
			{Name: eventReset, Src: []string{StateCommitted, StateFailed}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				s.log.Debug(ctx, "sync state changed", "from", e.Src, "to", e.Dst)
			},
		},
	)

	return s
}

// State returns the current lifecycle state.
func (s *SyncService) State() string {
	return s.machine.Current()
}

// Watermark returns the end of the last acknowledged delta window.
func (s *SyncService) Watermark(ctx context.Context) (time.Time, error) {
	return s.watermark.Read(ctx)
}

// Ping probes the backend without touching any local state.
func (s *SyncService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Sync runs one attempt. On success the report describes what was
// committed. On failure before acknowledgement nothing was mutated and the
// report is nil. A non-nil report together with a non-nil error means the
// backend acknowledged but the outbox drain failed; the watermark is
// already durable and a retry is safe.
func (s *SyncService) Sync(ctx context.Context) (*SyncReport, error) {
	if err := s.machine.Event(ctx, eventBegin); err != nil {
		return nil, fmt.Errorf("%w (state %s)", ErrSyncInFlight, s.machine.Current())
	}

	report, err := s.run(ctx)

	// The terminal transitions must land even when the caller's context is
	// already canceled, otherwise the machine would stay stuck mid-attempt.
	done := context.WithoutCancel(ctx)
	if err != nil && (report == nil || !report.Committed) {
		if ferr := s.machine.Event(done, eventFail); ferr != nil {
			s.log.Error(done, "failed to record sync failure", "error", ferr)
		}
	}
	if rerr := s.machine.Event(done, eventReset); rerr != nil {
		s.log.Error(done, "failed to reset sync state", "error", rerr)
	}

	if err != nil && (report == nil || !report.Committed) {
		return nil, err
	}
	return report, err
}

func (s *SyncService) run(ctx context.Context) (*SyncReport, error) {
	since, err := s.watermark.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read watermark: %w", err)
	}

	// Close the window before the exchange starts so samples recorded while
	// the request is in flight land in the next window instead of vanishing.
	windowEnd := timeNow().UTC()
	if windowEnd.Before(since) {
		// Clock moved backwards; fetch an empty window rather than
		// rewinding the watermark.
		windowEnd = since
	}

	snapshot, err := s.outbox.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot outbox: %w", err)
	}

	delta, err := s.fetcher.Fetch(ctx, since, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch delta: %w", err)
	}

	payload := buildPayload(s.device, snapshot, delta)

	if err := s.machine.Event(ctx, eventSubmit); err != nil {
		return nil, fmt.Errorf("failed to enter submitting state: %w", err)
	}

	s.log.Info(ctx, "submitting sync payload",
		"events", payload.EventCount(),
		"records", payload.RecordCount(),
		"window_start", since,
		"window_end", windowEnd,
	)

	result, err := s.client.Sync(ctx, payload)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{
		WindowStart: since,
		WindowEnd:   windowEnd,
		Events:      payload.EventCount(),
		Records:     payload.RecordCount(),
		Dropped:     delta.Dropped,
		Counts:      result.Counts,
		ServerTime:  result.ServerTime,
	}

	// The backend acknowledged: local bookkeeping must land even if the
	// caller's context got canceled while the request was in flight.
	persistCtx := context.WithoutCancel(ctx)

	if err := s.watermark.Write(persistCtx, windowEnd); err != nil {
		return nil, fmt.Errorf("failed to advance watermark: %w", err)
	}

	report.Committed = true
	if err := s.machine.Event(persistCtx, eventCommit); err != nil {
		return report, fmt.Errorf("failed to enter committed state: %w", err)
	}

	if err := s.outbox.Drain(persistCtx, snapshot); err != nil {
		report.DrainFailed = true
		return report, fmt.Errorf("backend acknowledged but outbox drain failed: %w", err)
	}

	s.log.Info(ctx, "sync committed",
		"events", report.Events,
		"records", report.Records,
		"dropped", report.Dropped,
		"watermark", report.WindowEnd,
	)

	return report, nil
}

// buildPayload merges an outbox snapshot and a normalized delta into one
// submission. Appending onto the pre-initialized payload keeps every
// category a JSON array even when empty.
func buildPayload(device string, snapshot *models.OutboxSnapshot, delta *Delta) *models.SyncPayload {
	payload := models.NewSyncPayload(device)

	payload.MealEvents = append(payload.MealEvents, snapshot.Meals...)
	payload.MedicationEvents = append(payload.MedicationEvents, snapshot.Medications...)
	payload.ExerciseSets = append(payload.ExerciseSets, snapshot.ExerciseSets...)

	payload.EGVReadings = append(payload.EGVReadings, delta.EGVReadings...)
	payload.Workouts = append(payload.Workouts, delta.Workouts...)
	payload.WeightReadings = append(payload.WeightReadings, delta.WeightReadings...)
	payload.SleepSessions = append(payload.SleepSessions, delta.SleepSessions...)
	payload.HealthMetrics = append(payload.HealthMetrics, delta.HealthMetrics...)

	return payload
}
