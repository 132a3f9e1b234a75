package models

import (
	"testing"
	"time"
)

func TestNilRoundIsNeverActive(t *testing.T) {
	var r *Round
	if r.Active(time.Now()) {
		t.Fatal("nil round must be inactive")
	}
	if r.Remaining(time.Now()) != 0 {
		t.Fatal("nil round must have zero remaining time")
	}
	if _, ok := r.Card("x"); ok {
		t.Fatal("nil round must not resolve cards")
	}
}

func TestRoundActiveWindow(t *testing.T) {
	expires := time.Now().Add(time.Minute)
	r := NewRound(nil, expires)

	if !r.Active(expires.Add(-time.Second)) {
		t.Fatal("round must be active before expiration")
	}
	if r.Active(expires) {
		t.Fatal("round must be inactive exactly at expiration")
	}
	if r.Active(expires.Add(time.Second)) {
		t.Fatal("round must be inactive after expiration")
	}
}

func TestRoundRemainingClampsToZero(t *testing.T) {
	expires := time.Now()
	r := NewRound(nil, expires)

	if got := r.Remaining(expires.Add(time.Second)); got != 0 {
		t.Fatalf("expected zero, got %v", got)
	}
	if got := r.Remaining(expires.Add(-10 * time.Second)); got != 10*time.Second {
		t.Fatalf("expected 10s, got %v", got)
	}
}

func TestRoundCardLookup(t *testing.T) {
	r := NewRound([]OfferCard{{ID: "a"}, {ID: "b"}}, time.Now().Add(time.Minute))

	card, ok := r.Card("b")
	if !ok || card.ID != "b" {
		t.Fatalf("expected card b, got %+v ok=%v", card, ok)
	}
	if _, ok := r.Card("missing"); ok {
		t.Fatal("missing id must not resolve")
	}
}
