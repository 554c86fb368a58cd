package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/oshokin/timed-door/internal/domain/door"
	"github.com/oshokin/timed-door/internal/logger"
	"github.com/oshokin/timed-door/internal/metrics"
	repo "github.com/oshokin/timed-door/internal/repository/state"
)

// service encapsulates the door business logic and persistence orchestration.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// repo handles persistent storage of door state.
	repo repo.Repository
	// door is the single door served by this process.
	door *domain.TimedDoor
	// newTimer builds the timer used by each watch.
	newTimer func() *domain.Timer
	// timestamp is when the door state last changed.
	timestamp time.Time
	// lastActor is who last changed the door state.
	lastActor *domain.Actor
	// watches tracks in-flight timer registrations.
	watches sync.WaitGroup
	// mu serializes transitions with their persistence.
	mu sync.RWMutex
}

// newService creates a service for a door with the given timeout, restoring
// the last persisted state when there is one.
func newService(ctx context.Context, repository repo.Repository, timeoutSeconds int) (*service, error) {
	s := &service{
		repo: repository,
		door: domain.NewTimedDoor(timeoutSeconds),
		newTimer: func() *domain.Timer {
			return domain.NewTimer()
		},
		timestamp: time.Now(),
	}

	if repository == nil {
		return s, nil
	}

	state, err := repository.Load(ctx)
	switch {
	case err == nil:
		if state != nil {
			s.restore(ctx, state)
		}
	case errors.Is(err, repo.ErrNotFound):
		// Keep a fresh closed door.
	default:
		return nil, fmt.Errorf("load state: %w", err)
	}

	metrics.SetOpen(s.door.IsOpen())

	return s, nil
}

// restore applies a persisted state to the fresh door.
// The timeout always comes from configuration, not from the file.
func (s *service) restore(ctx context.Context, state *domain.State) {
	s.timestamp = state.Timestamp
	s.lastActor = state.LastActor.Clone()

	if !state.IsOpen {
		return
	}

	// A fresh door is closed, so this cannot conflict.
	_ = s.door.Unlock()

	logger.WarnKV(ctx, "Door restored open, starting timeout watch", "since", s.timestamp)
	s.startWatch(ctx)
}

// Unlock opens the door, persists the change and starts a timeout watch.
func (s *service) Unlock(ctx context.Context, actor *domain.Actor) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.door.Unlock(); err != nil {
		logger.WarnKV(ctx, "Unlock rejected", "error", err, "actor", actor)

		return nil, err
	}

	if err := s.commit(ctx, actor); err != nil {
		// Roll back: the door was closed a moment ago.
		_ = s.door.Lock()

		return nil, err
	}

	metrics.ObserveTransition(metrics.TransitionUnlock, true)
	logger.InfoKV(ctx, "Door unlocked", "actor", actor, "timeout_seconds", s.door.Timeout())

	s.startWatch(ctx)

	return s.snapshot(), nil
}

// Lock closes the door and persists the change.
func (s *service) Lock(ctx context.Context, actor *domain.Actor) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.door.Lock(); err != nil {
		logger.WarnKV(ctx, "Lock rejected", "error", err, "actor", actor)

		return nil, err
	}

	if err := s.commit(ctx, actor); err != nil {
		_ = s.door.Unlock()

		return nil, err
	}

	metrics.ObserveTransition(metrics.TransitionLock, false)
	logger.InfoKV(ctx, "Door locked", "actor", actor)

	return s.snapshot(), nil
}

// GetState returns the current door state.
func (s *service) GetState(ctx context.Context) *domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.snapshot()

	logger.DebugKV(ctx, "Door state requested", "is_open", state.IsOpen, "actor", state.LastActor)

	return state
}

// CheckState runs the timeout check immediately.
func (s *service) CheckState(ctx context.Context) error {
	err := s.door.CheckState()
	if err != nil {
		metrics.TimeoutViolationsTotal.Inc()
		logger.WarnKV(ctx, "Door check found the door open", "timeout_seconds", s.door.Timeout())
	}

	return err
}

// Wait blocks until all in-flight watches have fired.
func (s *service) Wait() {
	s.watches.Wait()
}

// commit records who changed the door and persists the new state.
// Callers hold s.mu.
func (s *service) commit(ctx context.Context, actor *domain.Actor) error {
	previousTimestamp, previousActor := s.timestamp, s.lastActor

	s.timestamp = time.Now()
	s.lastActor = actor.Clone()

	if s.repo == nil {
		return nil
	}

	if err := s.repo.Save(ctx, s.snapshot()); err != nil {
		s.timestamp, s.lastActor = previousTimestamp, previousActor

		logger.Errorf(ctx, "Failed to persist door state: %v", err)

		return fmt.Errorf("persist state: %w", err)
	}

	return nil
}

// snapshot returns a detached copy of the current state. Callers hold s.mu.
func (s *service) snapshot() *domain.State {
	state := &domain.State{
		Timestamp:      s.timestamp,
		LastActor:      s.lastActor,
		IsOpen:         s.door.IsOpen(),
		TimeoutSeconds: s.door.Timeout(),
	}

	return state.Clone()
}

// startWatch registers the door with a new timer on its own goroutine.
// The watch outlives the request that started it.
func (s *service) startWatch(ctx context.Context) {
	ctx = logger.WithKV(context.WithoutCancel(ctx), "watch_id", uuid.NewString())

	s.watches.Add(1)

	go func() {
		defer s.watches.Done()

		timer := s.newTimer()
		client := domain.TimerClientFunc(func() error {
			metrics.TimerNotificationsTotal.Inc()

			return s.door.CheckState()
		})

		logger.DebugKV(ctx, "Timeout watch started", "timeout_seconds", s.door.Timeout())

		err := timer.RegisterClient(s.door.Timeout(), client)

		switch {
		case err == nil:
			logger.Info(ctx, "Door closed in time")
		case errors.Is(err, domain.ErrTimeUp):
			metrics.TimeoutViolationsTotal.Inc()
			logger.ErrorKV(ctx, "Door timeout violated", "error", err, "timeout_seconds", s.door.Timeout())
		default:
			logger.ErrorKV(ctx, "Timeout watch failed", "error", err)
		}
	}()
}
