// pkg/mem/flow_store.go
package mem

import (
	"sync"
	"time"
)

// Flow kinds stored in a FlowState.
const (
	FlowRegister       = "register"
	FlowOwnerRegister  = "owner_register"
	FlowProfileChange  = "profile_change"
	FlowPasswordChange = "password_change"
)

// OwnerDraft holds the owner identity captured in step 1 of the three-step
// owner flow. It lives only in the flow store until the hotel details of
// step 2 arrive; no user row exists for it yet.
type OwnerDraft struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// FlowState is the per-browser-session continuation record for a multi-step
// flow. Losing it is equivalent to "flow expired, restart".
type FlowState struct {
	Kind          string      `json:"kind"`
	Step          int         `json:"step"`
	PendingUserID string      `json:"pending_user_id,omitempty"`
	PendingEmail  bool        `json:"pending_email,omitempty"`
	PendingPhone  bool        `json:"pending_phone,omitempty"`
	OwnerDraft    *OwnerDraft `json:"owner_draft,omitempty"`
}

type FlowStateStore interface {
	Put(token string, state FlowState, ttl time.Duration)

	// Get returns the state for token if present and not expired.
	Get(token string) (FlowState, bool)

	// Clear removes the state for token. Clearing an absent token is a no-op.
	Clear(token string)
}

type entry struct {
	state     FlowState
	expiresAt time.Time
}

// FlowStates is the in-process FlowStateStore. Suitable for a single
// instance; multi-instance deployments use the redis-backed store.
type FlowStates struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewFlowStates() *FlowStates {
	return &FlowStates{
		data: make(map[string]entry),
	}
}

func (s *FlowStates) Put(token string, state FlowState, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = entry{
		state:     state,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *FlowStates) Get(token string) (FlowState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return FlowState{}, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, token) // cleanup expired
		return FlowState{}, false
	}
	return e.state, true
}

func (s *FlowStates) Clear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, token)
}
