package client

import "sync"

// SessionState is the explicit authentication state of the client.
// Transitions: SignedOut -> SigningIn -> SignedIn | SignedOut.
type SessionState int

const (
	SignedOut SessionState = iota
	SigningIn
	SignedIn
)

func (s SessionState) String() string {
	switch s {
	case SignedOut:
		return "signed_out"
	case SigningIn:
		return "signing_in"
	case SignedIn:
		return "signed_in"
	default:
		return "unknown"
	}
}

// SessionEvent is one state change. User is set only for SignedIn.
type SessionEvent struct {
	State SessionState
	User  *UserInfo
}

// SessionHub holds the session state and fans out change events.
// Every Subscribe returns an unsubscribe function; the caller must
// invoke it when done or the subscriber channel leaks.
type SessionHub struct {
	mu     sync.Mutex
	state  SessionState
	user   *UserInfo
	subs   map[int]chan SessionEvent
	nextID int
}

func NewSessionHub() *SessionHub {
	return &SessionHub{
		state: SignedOut,
		subs:  make(map[int]chan SessionEvent),
	}
}

// State returns the current state and, when signed in, the user
func (h *SessionHub) State() (SessionState, *UserInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state, h.user
}

// Subscribe registers for state changes. The channel is buffered;
// events are dropped for subscribers that stop draining it.
func (h *SessionHub) Subscribe() (<-chan SessionEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan SessionEvent, 8)
	h.subs[id] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

func (h *SessionHub) set(state SessionState, user *UserInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == state && h.user == user {
		return
	}
	h.state = state
	h.user = user

	ev := SessionEvent{State: state, User: user}
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
