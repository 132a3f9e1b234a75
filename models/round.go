package models

import "time"

// Round is one timed window during which a fixed deck is open for guesses.
// The coordinator swaps in a whole new Round at round start; the card set
// never changes afterwards, so readers holding a *Round are always safe.
type Round struct {
	Cards     []OfferCard
	ExpiresAt time.Time
}

func NewRound(cards []OfferCard, expiresAt time.Time) *Round {
	return &Round{Cards: cards, ExpiresAt: expiresAt}
}

// Active reports whether the round is still open at the given instant.
// A nil round (no round started yet) is never active.
func (r *Round) Active(now time.Time) bool {
	return r != nil && now.Before(r.ExpiresAt)
}

// Remaining returns the time left in the round, clamped to zero.
func (r *Round) Remaining(now time.Time) time.Duration {
	if !r.Active(now) {
		return 0
	}
	return r.ExpiresAt.Sub(now)
}

// Card looks up a card in the deck by id.
func (r *Round) Card(id string) (OfferCard, bool) {
	if r == nil {
		return OfferCard{}, false
	}
	for _, c := range r.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return OfferCard{}, false
}
