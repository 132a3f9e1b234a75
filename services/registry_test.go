package services

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeTransport records delivered frames and can be told to fail sends.
type fakeTransport struct {
	mu       sync.Mutex
	messages [][]byte
	fail     bool
	closed   bool
}

func (f *fakeTransport) Send(message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("forced send failure")
	}
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeTransport) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeTransport) messageTypes(t *testing.T) []string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	types := make([]string, 0, len(f.messages))
	for _, raw := range f.messages {
		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("undecodable frame %q: %v", raw, err)
		}
		types = append(types, envelope.Type)
	}
	return types
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func newTestRegistry(cooldown time.Duration) *Registry {
	return NewRegistry(cooldown, zap.NewNop().Sugar())
}

func TestConnectOverwritesExistingTransport(t *testing.T) {
	registry := newTestRegistry(time.Second)
	first := &fakeTransport{}
	second := &fakeTransport{}

	registry.Connect("s1", first)
	registry.Connect("s1", second)

	if registry.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", registry.Count())
	}
	if !first.closed {
		t.Fatal("expected replaced transport to be closed")
	}
	if second.closed {
		t.Fatal("new transport must stay open")
	}
}

func TestDisconnectUnknownSessionIsNoop(t *testing.T) {
	registry := newTestRegistry(time.Second)
	registry.Disconnect("ghost")
	if registry.Count() != 0 {
		t.Fatalf("expected 0 sessions, got %d", registry.Count())
	}
}

func TestDisconnectRemovesSessionAndStamp(t *testing.T) {
	registry := newTestRegistry(time.Hour)
	transport := &fakeTransport{}

	registry.Connect("s1", transport)
	if !registry.CheckAndStampCooldown("s1") {
		t.Fatal("first action should be accepted")
	}
	registry.Disconnect("s1")

	if registry.Count() != 0 {
		t.Fatalf("expected 0 sessions, got %d", registry.Count())
	}
	if !transport.closed {
		t.Fatal("expected transport to be closed")
	}
	// Reconnecting starts with a clean cooldown record.
	registry.Connect("s1", &fakeTransport{})
	if !registry.CheckAndStampCooldown("s1") {
		t.Fatal("cooldown record should not survive a disconnect")
	}
}

func TestStaleTransportDisconnectKeepsReplacement(t *testing.T) {
	registry := newTestRegistry(time.Second)
	old := &fakeTransport{}
	replacement := &fakeTransport{}

	registry.Connect("s1", old)
	registry.Connect("s1", replacement)
	// The old pump exits after being replaced; its teardown must not remove
	// the replacement's registration.
	registry.DisconnectTransport("s1", old)

	if registry.Count() != 1 {
		t.Fatalf("expected the replacement to stay registered, count=%d", registry.Count())
	}
	registry.Broadcast(map[string]string{"type": "leaderboard_update"})
	if replacement.count() != 1 {
		t.Fatalf("replacement should receive broadcasts, got %d", replacement.count())
	}
}

func TestCooldownRejectsRapidActions(t *testing.T) {
	registry := newTestRegistry(200 * time.Millisecond)

	if !registry.CheckAndStampCooldown("s1") {
		t.Fatal("first action should be accepted")
	}
	if registry.CheckAndStampCooldown("s1") {
		t.Fatal("immediate second action should be rejected")
	}
}

func TestCooldownAcceptsAfterInterval(t *testing.T) {
	registry := newTestRegistry(30 * time.Millisecond)

	if !registry.CheckAndStampCooldown("s1") {
		t.Fatal("first action should be accepted")
	}
	time.Sleep(45 * time.Millisecond)
	if !registry.CheckAndStampCooldown("s1") {
		t.Fatal("action after the interval should be accepted")
	}
}

func TestRejectedActionDoesNotMoveStamp(t *testing.T) {
	registry := newTestRegistry(120 * time.Millisecond)

	if !registry.CheckAndStampCooldown("s1") {
		t.Fatal("first action should be accepted")
	}
	time.Sleep(60 * time.Millisecond)
	if registry.CheckAndStampCooldown("s1") {
		t.Fatal("action inside the interval should be rejected")
	}
	// 130ms after the accepted action: if the rejection above had moved the
	// stamp, this would still be inside the interval and get rejected.
	time.Sleep(70 * time.Millisecond)
	if !registry.CheckAndStampCooldown("s1") {
		t.Fatal("stamp must not move on rejection")
	}
}

func TestCooldownIsPerSession(t *testing.T) {
	registry := newTestRegistry(time.Hour)

	if !registry.CheckAndStampCooldown("s1") {
		t.Fatal("first action for s1 should be accepted")
	}
	if !registry.CheckAndStampCooldown("s2") {
		t.Fatal("first action for s2 should be accepted")
	}
}

func TestBroadcastReachesAllSessions(t *testing.T) {
	registry := newTestRegistry(time.Second)
	transports := []*fakeTransport{{}, {}, {}}
	for i, tr := range transports {
		registry.Connect(string(rune('a'+i)), tr)
	}

	registry.Broadcast(map[string]string{"type": "new_round"})

	for i, tr := range transports {
		if tr.count() != 1 {
			t.Fatalf("transport %d received %d messages, expected 1", i, tr.count())
		}
	}
}

func TestBroadcastIsolatesFailingSession(t *testing.T) {
	registry := newTestRegistry(time.Second)
	good1 := &fakeTransport{}
	bad := &fakeTransport{fail: true}
	good2 := &fakeTransport{}

	registry.Connect("g1", good1)
	registry.Connect("bad", bad)
	registry.Connect("g2", good2)

	registry.Broadcast(map[string]string{"type": "round_end"})

	if good1.count() != 1 || good2.count() != 1 {
		t.Fatalf("healthy sessions must still receive the broadcast, got %d and %d",
			good1.count(), good2.count())
	}
	if got := good1.messageTypes(t); got[0] != "round_end" {
		t.Fatalf("unexpected message type %q", got[0])
	}
}
