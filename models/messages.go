package models

import "time"

// Inbound client message.
type GuessMessage struct {
	Action string `json:"action"`  // "approve" or "denounce"
	CardID string `json:"card_id"` // id of the card being judged
}

// Outbound message types. Every outbound frame carries a "type" field the
// frontend switches on.
const (
	TypeNewRound          = "new_round"
	TypeRoundEnd          = "round_end"
	TypeLeaderboardUpdate = "leaderboard_update"
	TypeFeedback          = "feedback"
	TypeError             = "error"
	TypeGameState         = "game_state"
)

// NewRoundMessage announces a fresh deck to every connected session.
type NewRoundMessage struct {
	Type      string      `json:"type"`
	Cards     []OfferCard `json:"cards"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// GameStateMessage is sent once to a session joining mid-round.
type GameStateMessage struct {
	Type      string      `json:"type"`
	Cards     []OfferCard `json:"cards"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// RoundEndMessage carries the final ranking for the round.
type RoundEndMessage struct {
	Type        string       `json:"type"`
	Leaderboard []ScoreEntry `json:"leaderboard"`
}

// LeaderboardUpdateMessage is broadcast after every scored guess.
type LeaderboardUpdateMessage struct {
	Type        string       `json:"type"`
	Leaderboard []ScoreEntry `json:"leaderboard"`
}

// FeedbackMessage is the personal reply to a scored guess.
type FeedbackMessage struct {
	Type          string `json:"type"`
	CardID        string `json:"card_id"`
	Correct       bool   `json:"correct"`
	CorrectLabel  string `json:"correct_label"`
	ScoreChange   int    `json:"score_change"`
	NewTotalScore int64  `json:"new_total_score"`
}

// ErrorMessage is a scoped reply sent only to the offending session.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorMessage {
	return ErrorMessage{Type: TypeError, Message: message}
}
