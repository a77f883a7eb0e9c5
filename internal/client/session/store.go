package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/storage"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

// Storage keys. KeyLegacyUser is only ever read, as a fallback for clients
// that stored the user before KeyUser existed.
const (
	KeyToken      = "auth_token"
	KeyUser       = "auth_user"
	KeyLegacyUser = "user_data"
	KeyTimestamp  = "auth_timestamp"
)

// DefaultTTL is how long a persisted session stays valid.
const DefaultTTL = 24 * time.Hour

var allKeys = []string{KeyToken, KeyUser, KeyLegacyUser, KeyTimestamp}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTTL sets the session lifetime. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// Store is the single owner of the live session. Mutating calls are
// serialized: a second Login waits for the first to finish writing, and the
// last one to complete wins. Listeners see changes in the same order.
type Store struct {
	opMu     sync.Mutex
	notifyMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[int]func(State)
	nextID    int

	repo storage.Repository
	log  logging.Logger
	now  func() time.Time
	ttl  time.Duration
}

func NewStore(repo storage.Repository, opts ...Option) *Store {
	s := &Store{
		repo:      repo,
		log:       logging.Nop(),
		now:       time.Now,
		ttl:       DefaultTTL,
		state:     State{Loading: true},
		listeners: make(map[int]func(State)),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "session")
	return s
}

// Snapshot returns the current state. The Session it points to is a copy.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.Session != nil {
		c := st.Session.Clone()
		st.Session = &c
	}
	return st
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Subscribe registers fn to be called with the new state after every change.
// fn runs on the goroutine that made the change and must not block. It may
// read the store but must not call Restore, Login, Logout or UpdatePartial.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) set(st State) State {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return s.Snapshot()
}

// publish releases opMu and notifies listeners of st. The next operation's
// notification waits for this one, so listeners never see an older state
// after a newer one. Call it with opMu held.
func (s *Store) publish(st State) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.opMu.Unlock()
	s.notify(st)
}

func (s *Store) notify(st State) {
	s.mu.RLock()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(st)
	}
}

// Restore loads the persisted session. It never fails: anything that cannot
// be trusted is wiped and the store resolves to logged out. Loading is false
// afterwards in every case.
func (s *Store) Restore(ctx context.Context) {
	s.opMu.Lock()
	st := s.restore(ctx)
	st.Loading = false
	s.publish(s.set(st))
}

func (s *Store) restore(ctx context.Context) State {
	token, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		s.log.Error(ctx, "reading stored token failed", "error", err)
		return State{}
	}

	raw, source, err := s.readUser(ctx)
	if err != nil {
		s.log.Error(ctx, "reading stored user failed", "error", err)
		return State{}
	}

	hasToken := strings.TrimSpace(string(token)) != ""
	switch {
	case !hasToken && raw == nil:
		return State{}
	case !hasToken || raw == nil:
		s.discard(ctx, "token and user are not both present")
		return State{}
	}

	payload, err := ParsePayload(raw)
	if err != nil {
		s.discard(ctx, err.Error())
		return State{}
	}
	sess, err := Normalize(payload)
	if err != nil {
		s.discard(ctx, err.Error())
		return State{}
	}

	if err := s.checkAge(ctx); err != nil {
		s.discard(ctx, err.Error())
		return State{}
	}

	s.log.Info(ctx, "session restored", "user_id", sess.UserID, "account", sess.AccountType, "source", source)
	return State{Token: string(token), Session: &sess}
}

// readUser prefers the current key and falls back to the legacy one.
func (s *Store) readUser(ctx context.Context) ([]byte, string, error) {
	for _, key := range []string{KeyUser, KeyLegacyUser} {
		v, err := s.repo.Get(ctx, key)
		if err != nil {
			return nil, "", err
		}
		if v != nil {
			return v, key, nil
		}
	}
	return nil, "", nil
}

// checkAge enforces the TTL. Sessions stored before timestamps existed are
// stamped now and accepted.
func (s *Store) checkAge(ctx context.Context) error {
	v, err := s.repo.Get(ctx, KeyTimestamp)
	if err != nil {
		return err
	}
	if v == nil {
		if err := s.repo.Set(ctx, KeyTimestamp, s.stamp()); err != nil {
			s.log.Warn(ctx, "stamping legacy session failed", "error", err)
		}
		return nil
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp %q", ErrInvalidSession, v)
	}
	if s.ttl > 0 && s.now().Sub(time.UnixMilli(ms)) > s.ttl {
		return ErrExpired
	}
	return nil
}

func (s *Store) stamp() []byte {
	return []byte(strconv.FormatInt(s.now().UnixMilli(), 10))
}

func (s *Store) discard(ctx context.Context, reason string) {
	s.log.Warn(ctx, "discarding stored session", "reason", reason)
	if err := s.repo.Apply(ctx, removeAll()...); err != nil {
		s.log.Error(ctx, "wiping stored session failed", "error", err)
	}
}

func removeAll() []storage.Op {
	ops := make([]storage.Op, 0, len(allKeys))
	for _, k := range allKeys {
		ops = append(ops, storage.Remove(k))
	}
	return ops
}

// Login replaces the live session with the one described by raw and persists
// it with token. On error nothing changes, in memory or on disk. The returned
// intent says where the user should land.
func (s *Store) Login(ctx context.Context, token string, raw map[string]any) (nav.Intent, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nav.Intent{}, ErrEmptyToken
	}
	sess, body, err := encode(raw)
	if err != nil {
		return nav.Intent{}, err
	}

	s.opMu.Lock()
	err = s.repo.Apply(ctx,
		storage.Put(KeyToken, []byte(token)),
		storage.Put(KeyUser, body),
		storage.Put(KeyTimestamp, s.stamp()),
		storage.Remove(KeyLegacyUser),
	)
	if err != nil {
		s.opMu.Unlock()
		return nav.Intent{}, fmt.Errorf("persist session: %w", err)
	}
	s.log.Info(ctx, "logged in", "user_id", sess.UserID, "account", sess.AccountType)
	s.publish(s.set(State{Token: token, Session: &sess}))
	return LandingIntent(sess), nil
}

// Logout forgets the session in memory and removes every persisted key. It is
// safe to call when already logged out. The in-memory state is cleared even
// if the storage delete fails; that error is returned.
func (s *Store) Logout(ctx context.Context) error {
	s.opMu.Lock()
	st := s.set(State{})
	err := s.repo.Apply(ctx, removeAll()...)
	s.publish(st)

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// UpdatePartial merges fields into the live session (provided keys win) and
// persists the result. Setting one alias of a field replaces whichever alias
// the session was stored under. With no live session it does nothing and
// reports false.
func (s *Store) UpdatePartial(ctx context.Context, fields map[string]any) (Session, bool, error) {
	s.opMu.Lock()

	cur := s.Snapshot()
	if !cur.IsAuthenticated() {
		s.opMu.Unlock()
		return Session{}, false, nil
	}

	merged := cur.Session.ToMap()
	for k := range fields {
		for _, alias := range aliasGroup(k) {
			delete(merged, alias)
		}
	}
	for k, v := range fields {
		merged[k] = v
	}

	sess, body, err := encode(merged)
	if err != nil {
		s.opMu.Unlock()
		return *cur.Session, false, err
	}
	if err := s.repo.Set(ctx, KeyUser, body); err != nil {
		s.opMu.Unlock()
		return *cur.Session, false, fmt.Errorf("persist session: %w", err)
	}

	s.publish(s.set(State{Token: cur.Token, Session: &sess}))
	return sess.Clone(), true, nil
}

// encode normalizes raw and returns the session as Restore will read it back
// from body, so the live session never holds values JSON cannot reproduce.
func encode(raw map[string]any) (Session, []byte, error) {
	sess, err := Normalize(raw)
	if err != nil {
		return Session{}, nil, err
	}
	body, err := json.Marshal(sess)
	if err != nil {
		return Session{}, nil, fmt.Errorf("encode session: %w", err)
	}
	payload, err := ParsePayload(body)
	if err != nil {
		return Session{}, nil, fmt.Errorf("encode session: %w", err)
	}
	sess, err = Normalize(payload)
	if err != nil {
		return Session{}, nil, err
	}
	return sess, body, nil
}

// IsExpired reports whether err came from an expired stored session.
func IsExpired(err error) bool { return errors.Is(err, ErrExpired) }
