// Package session keeps one intake Flow per visitor in memory and tears
// flows down on delete, on successful submit and after inactivity.
package session

import (
	"context"
	"sync"
	"time"

	"offerte_backend/internal/events"
	"offerte_backend/internal/offerte/service"
	"offerte_backend/platform/apperr"
	"offerte_backend/platform/logger"

	"github.com/google/uuid"
)

// Session is one visitor's intake. Its flow is only touched under mu.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu       sync.Mutex
	flow     *service.Flow
	lastSeen time.Time
	closed   bool
}

// Store is a process-local session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	newFlow func() *service.Flow
	bus     events.Bus
	log     *logger.Logger
	ttl     time.Duration
	clock   func() time.Time
}

// Options configure a Store. Bus may be nil.
type Options struct {
	Flow  service.FlowDeps
	Bus   events.Bus
	Log   *logger.Logger
	TTL   time.Duration
	Clock func() time.Time
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	deps := opts.Flow
	if deps.Logger == nil {
		deps.Logger = log
	}
	if deps.Clock == nil {
		deps.Clock = clock
	}
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		newFlow:  func() *service.Flow { return service.NewFlow(deps) },
		bus:      opts.Bus,
		log:      log,
		ttl:      opts.TTL,
		clock:    clock,
	}
}

// Create starts a new session with every stage at its default.
func (s *Store) Create() *Session {
	now := s.clock()
	sess := &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		flow:      s.newFlow(),
		lastSeen:  now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// With runs fn on the session's flow while holding the session lock. A flow
// destroyed by fn (a successful submit) is dropped from the store.
func (s *Store) With(ctx context.Context, id uuid.UUID, fn func(*service.Flow) error) error {
	sess, err := s.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return apperr.Gone("intake session has ended")
	}
	sess.lastSeen = s.clock()
	err = fn(sess.flow)
	destroyed := sess.flow.Destroyed()
	if destroyed {
		sess.closed = true
	}
	sess.mu.Unlock()

	if destroyed {
		s.remove(id)
		s.log.WithContext(ctx).Info("intake session completed", "session_id", id.String())
	}
	return err
}

// Delete abandons a session and releases its previews.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.get(id)
	if err != nil {
		return err
	}
	s.close(ctx, sess, false)
	return nil
}

// Sweep closes every session idle for longer than the TTL. It returns the
// number of closed sessions.
func (s *Store) Sweep(ctx context.Context) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.clock().Add(-s.ttl)

	s.mu.RLock()
	candidates := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		candidates = append(candidates, sess)
	}
	s.mu.RUnlock()

	closed := 0
	for _, sess := range candidates {
		sess.mu.Lock()
		expired := !sess.closed && sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if expired && s.close(ctx, sess, true) {
			closed++
		}
	}
	return closed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperr.NotFound("intake session not found")
	}
	return sess, nil
}

func (s *Store) remove(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// close destroys the flow once and publishes IntakeAbandoned. It reports
// whether this call did the closing.
func (s *Store) close(ctx context.Context, sess *Session, expired bool) bool {
	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return false
	}
	sess.closed = true
	hadData := sess.flow.HasFormData()
	released := sess.flow.Destroy()
	sess.mu.Unlock()

	s.remove(sess.ID)

	if expired {
		s.log.SessionExpired(sess.ID.String(), released)
	} else {
		s.log.WithContext(ctx).Info("intake session abandoned", "session_id", sess.ID.String(), "released_previews", released)
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.IntakeAbandoned{
			BaseEvent:   events.NewBaseEventAt(s.clock()),
			SessionID:   sess.ID,
			HadFormData: hadData,
			Expired:     expired,
		})
	}
	return true
}
