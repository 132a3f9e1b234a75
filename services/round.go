package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lucasmeira/pirata-backend/game"
	"github.com/lucasmeira/pirata-backend/models"
	"github.com/lucasmeira/pirata-backend/store"
	"go.uber.org/zap"
)

var (
	// ErrRoundInactive rejects guesses outside the round window.
	ErrRoundInactive = errors.New("round not active")
	// ErrUnknownCard rejects guesses for ids not in the current deck.
	// Callers drop these silently; no feedback or error reply is sent.
	ErrUnknownCard = errors.New("card not in current deck")
)

// Coordinator owns the round state and drives the lifecycle loop:
// start round -> wait for expiry -> broadcast final ranking -> pause ->
// repeat. Handlers read the current round under RLock; the loop swaps a
// whole new Round in under the write lock, so readers see either the
// previous round or the next one, never a mix.
type Coordinator struct {
	mu    sync.RWMutex
	round *models.Round

	decks    DeckGenerator
	board    store.Leaderboard
	registry *Registry

	roundDuration time.Duration
	deckSize      int
	roundPause    time.Duration
	topN          int

	log *zap.SugaredLogger
}

func NewCoordinator(decks DeckGenerator, board store.Leaderboard, registry *Registry,
	roundDuration time.Duration, deckSize int, roundPause time.Duration, topN int,
	log *zap.SugaredLogger) *Coordinator {
	return &Coordinator{
		decks:         decks,
		board:         board,
		registry:      registry,
		roundDuration: roundDuration,
		deckSize:      deckSize,
		roundPause:    roundPause,
		topN:          topN,
		log:           log,
	}
}

// Run drives rounds until ctx is cancelled. Phase transitions are one-shot
// timers; the loop never polls.
func (co *Coordinator) Run(ctx context.Context) {
	co.log.Infof("[round] lifecycle loop started")
	for {
		co.startRound(ctx)

		select {
		case <-ctx.Done():
			co.log.Infof("[round] lifecycle loop stopping")
			return
		case <-time.After(co.roundDuration):
		}

		co.endRound(ctx)

		select {
		case <-ctx.Done():
			co.log.Infof("[round] lifecycle loop stopping")
			return
		case <-time.After(co.roundPause):
		}
	}
}

// startRound builds and publishes the next round inside one exclusive
// section: deck generation, leaderboard reset, round swap and the new_round
// broadcast all happen before the lock is released, so a joiner snapshotting
// concurrently sees either the old round or the fully formed new one.
func (co *Coordinator) startRound(ctx context.Context) {
	co.mu.Lock()
	defer co.mu.Unlock()

	co.log.Infof("[round] starting new round")

	cards, err := co.decks.Generate(ctx, co.deckSize)
	if err != nil {
		// Continuity over transparency: players get a playable round, the
		// failure only shows up in the logs.
		co.log.Errorf("[round] deck generation failed, using fallback deck: %v", err)
		cards = FallbackDeck()
	}

	if err := co.board.Reset(ctx); err != nil {
		co.log.Errorf("[round] leaderboard reset failed: %v", err)
	}

	co.round = models.NewRound(cards, time.Now().Add(co.roundDuration))

	co.registry.Broadcast(models.NewRoundMessage{
		Type:      models.TypeNewRound,
		Cards:     co.round.Cards,
		ExpiresAt: co.round.ExpiresAt,
	})
	co.log.Infof("[round] broadcast %d cards, expires at %s", len(cards), co.round.ExpiresAt.Format(time.RFC3339))
}

// endRound publishes the final ranking once the window has closed.
func (co *Coordinator) endRound(ctx context.Context) {
	entries, err := co.board.TopN(ctx, co.topN)
	if err != nil {
		co.log.Errorf("[round] final leaderboard fetch failed: %v", err)
		entries = []models.ScoreEntry{}
	}
	if entries == nil {
		entries = []models.ScoreEntry{}
	}

	co.registry.Broadcast(models.RoundEndMessage{
		Type:        models.TypeRoundEnd,
		Leaderboard: entries,
	})
	co.log.Infof("[round] round ended, %d ranked entries", len(entries))
}

// IsActive reports whether the current round window is open.
func (co *Coordinator) IsActive() bool {
	co.mu.RLock()
	defer co.mu.RUnlock()
	return co.round.Active(time.Now())
}

// TimeRemaining returns the time left in the current round, zero when
// inactive.
func (co *Coordinator) TimeRemaining() time.Duration {
	co.mu.RLock()
	defer co.mu.RUnlock()
	return co.round.Remaining(time.Now())
}

// Snapshot returns the current round, or nil before the first round starts.
// Rounds are immutable once published, so handing the pointer out is safe.
func (co *Coordinator) Snapshot() *models.Round {
	co.mu.RLock()
	defer co.mu.RUnlock()
	return co.round
}

// GradeGuess validates a guess against the current round, scores it, applies
// the delta to the leaderboard and broadcasts the updated ranking. The
// personal feedback payload is returned for the transport to deliver.
func (co *Coordinator) GradeGuess(ctx context.Context, sessionID, nickname, cardID, guess string) (models.FeedbackMessage, error) {
	co.mu.RLock()
	round := co.round
	co.mu.RUnlock()

	now := time.Now()
	if !round.Active(now) {
		return models.FeedbackMessage{}, ErrRoundInactive
	}

	card, ok := round.Card(cardID)
	if !ok {
		return models.FeedbackMessage{}, ErrUnknownCard
	}

	correct := guess == card.Label
	delta := game.Score(correct, card.Difficulty, round.Remaining(now), co.roundDuration)

	total, err := co.board.Increment(ctx, sessionID, nickname, delta)
	if err != nil {
		return models.FeedbackMessage{}, err
	}

	co.broadcastLeaderboard(ctx)

	return models.FeedbackMessage{
		Type:          models.TypeFeedback,
		CardID:        cardID,
		Correct:       correct,
		CorrectLabel:  card.Label,
		ScoreChange:   delta,
		NewTotalScore: total,
	}, nil
}

// Leaderboard returns the current top entries.
func (co *Coordinator) Leaderboard(ctx context.Context) ([]models.ScoreEntry, error) {
	return co.board.TopN(ctx, co.topN)
}

func (co *Coordinator) broadcastLeaderboard(ctx context.Context) {
	entries, err := co.board.TopN(ctx, co.topN)
	if err != nil {
		co.log.Errorf("[round] leaderboard fetch failed: %v", err)
		return
	}
	if entries == nil {
		entries = []models.ScoreEntry{}
	}
	co.registry.Broadcast(models.LeaderboardUpdateMessage{
		Type:        models.TypeLeaderboardUpdate,
		Leaderboard: entries,
	})
}
