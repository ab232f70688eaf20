package session

import (
	"sync"

	"github.com/google/uuid"
)

// CookieName is the cookie that carries the session id.
const CookieName = "session_id"

// Flash is a transient notice shown to the user on the next page they load.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the server-held state for one visitor: identity once logged in,
// cart, and pending notices. Anonymous sessions (UserID zero) exist only so
// signup/login notices survive the redirect; Promote upgrades them at login.
type Session struct {
	ID       string
	UserID   uint
	Username string
	Cart     *Cart

	// Flashes can be appended by one request while another drains them, so
	// they get their own lock; the cart stays single-writer per session.
	flashMu sync.Mutex
	flashes []Flash
}

func (s *Session) Authenticated() bool {
	return s.UserID != 0
}

func (s *Session) AddFlash(level, message string) {
	s.flashMu.Lock()
	s.flashes = append(s.flashes, Flash{Level: level, Message: message})
	s.flashMu.Unlock()
}

// Flashes drains and returns the pending notices.
func (s *Session) Flashes() []Flash {
	s.flashMu.Lock()
	out := s.flashes
	s.flashes = nil
	s.flashMu.Unlock()
	return out
}

// Store owns all live sessions, keyed by random id. Sessions are handed out
// by reference; each one is only ever touched by its own request flow.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// New creates an authenticated session with an empty cart.
func (st *Store) New(userID uint, username string) *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
		Cart:     NewCart(),
	}
	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Anonymous creates an unauthenticated session that carries notices (and a
// cart, once promoted) for a visitor who has not logged in yet.
func (st *Store) Anonymous() *Session {
	sess := &Session{
		ID:   uuid.NewString(),
		Cart: NewCart(),
	}
	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Promote authenticates the session behind id under a fresh id, carrying its
// cart and pending notices over and dropping the stale entry. A login with no
// live prior session gets a brand-new one with an empty cart.
func (st *Store) Promote(id string, userID uint, username string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
		Cart:     NewCart(),
	}
	if prev, ok := st.sessions[id]; ok {
		delete(st.sessions, id)
		sess.Cart = prev.Cart
		sess.flashes = prev.Flashes()
	}
	st.sessions[sess.ID] = sess
	return sess
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	return sess, ok
}

// Delete terminates a session, discarding its cart and authentication state.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
