package services

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Transport is one connected session's outbound channel. Send must not
// block indefinitely; a full buffer or dead connection returns an error.
type Transport interface {
	Send(message []byte) error
	Close()
}

// Registry tracks connected sessions and their cooldown stamps, and fans
// broadcasts out to every registered transport. It replaces the pair of
// ambient maps the transport layer would otherwise share.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[string]Transport
	lastAction map[string]time.Time

	cooldown time.Duration
	log      *zap.SugaredLogger
}

func NewRegistry(cooldown time.Duration, log *zap.SugaredLogger) *Registry {
	return &Registry{
		sessions:   make(map[string]Transport),
		lastAction: make(map[string]time.Time),
		cooldown:   cooldown,
		log:        log,
	}
}

// Connect registers the session's transport, replacing (and closing) any
// previous transport for the same id.
func (r *Registry) Connect(sessionID string, t Transport) {
	r.mu.Lock()
	old, ok := r.sessions[sessionID]
	r.sessions[sessionID] = t
	r.mu.Unlock()

	if ok {
		old.Close()
	}
	r.log.Infof("[registry] session %s connected (total=%d)", sessionID, r.Count())
}

// Disconnect removes the session and its cooldown record. Calling it for an
// unknown session is a no-op.
func (r *Registry) Disconnect(sessionID string) {
	r.mu.Lock()
	t, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	delete(r.lastAction, sessionID)
	r.mu.Unlock()

	if !ok {
		return
	}
	t.Close()
	r.log.Infof("[registry] session %s disconnected (total=%d)", sessionID, r.Count())
}

// DisconnectTransport removes the session only if t is still its registered
// transport. A transport that was already replaced by a reconnect is closed
// without touching the session entry of its replacement.
func (r *Registry) DisconnectTransport(sessionID string, t Transport) {
	r.mu.Lock()
	current, ok := r.sessions[sessionID]
	if ok && current == t {
		delete(r.sessions, sessionID)
		delete(r.lastAction, sessionID)
	}
	r.mu.Unlock()

	t.Close()
	if ok && current == t {
		r.log.Infof("[registry] session %s disconnected (total=%d)", sessionID, r.Count())
	}
}

// CheckAndStampCooldown accepts the action and moves the session's stamp to
// now, unless less than the cooldown interval has passed since the last
// accepted action. A rejected action leaves the stamp untouched, so the
// stamp only ever moves forward.
func (r *Registry) CheckAndStampCooldown(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if last, ok := r.lastAction[sessionID]; ok && now.Sub(last) < r.cooldown {
		return false
	}
	r.lastAction[sessionID] = now
	return true
}

// Broadcast marshals the message once and delivers it to every registered
// transport concurrently. A failed send is logged and isolated to its
// session; it never delays the others or surfaces to the caller.
func (r *Registry) Broadcast(message interface{}) {
	payload, err := json.Marshal(message)
	if err != nil {
		r.log.Errorf("[registry] broadcast marshal: %v", err)
		return
	}

	r.mu.RLock()
	targets := make(map[string]Transport, len(r.sessions))
	for id, t := range r.sessions {
		targets[id] = t
	}
	r.mu.RUnlock()

	var wg sync.WaitGroup
	for id, t := range targets {
		wg.Add(1)
		go func(id string, t Transport) {
			defer wg.Done()
			if err := t.Send(payload); err != nil {
				r.log.Errorf("[registry] dropping message to session %s: %v", id, err)
			}
		}(id, t)
	}
	wg.Wait()
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
