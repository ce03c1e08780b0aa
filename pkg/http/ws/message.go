package ws

import (
	"encoding/json"
	"fmt"
)

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeStartStandard = "start_standard"
	TypeStartPassPlay = "start_pass_play"
	TypeGuess         = "guess"
	TypeSkip          = "skip"
	TypeNext          = "next"
	TypeQuit          = "quit"
	TypePlayAgain     = "play_again"
	TypeSpeakClue     = "speak_clue"
	TypeRequestState  = "request_state"

	// Server -> Client
	TypeRoundStarted  = "round_started"
	TypeRoundState    = "round_state"
	TypeGuessAck      = "guess_ack"
	TypeRoundWon      = "round_won"
	TypeRoundSkipped  = "round_skipped"
	TypeRoundLost     = "round_lost"
	TypeScoreChanged  = "score_changed"
	TypeSessionEnded  = "session_ended"
	TypeSessionState  = "session_state"
	TypePlaySound     = "play_sound"
	TypeSpeak         = "speak"
	TypeError         = "error"
	TypePing          = "ping"
	TypePong          = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage encodes payload into a message of the given type. A nil payload
// leaves Payload empty.
func NewMessage(msgType string, payload any) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	msg.Payload = data
	return msg, nil
}

// Client Messages (incoming)

type StartStandardPayload struct {
	Category string `json:"category"`
	Rounds   int    `json:"rounds,omitempty"` // 5, 10 or 15; defaults to the saved setting
}

type StartPassPlayPayload struct {
	Player1Name string `json:"player1_name"`
	Player2Name string `json:"player2_name"`
	Player1Pick string `json:"player1_pick"` // category player 2 answers from
	Player2Pick string `json:"player2_pick"` // category player 1 answers from
	Rounds      int    `json:"rounds,omitempty"`
}

type GuessPayload struct {
	Letter string `json:"letter"`
}

// Server Messages (outgoing)

type RoundStatePayload struct {
	Masked      string `json:"masked"`
	StrikesLeft int    `json:"strikes_left"`
	Progress    string `json:"progress"`
}

type GuessAckPayload struct {
	Accepted    bool   `json:"accepted"`
	Letter      string `json:"letter,omitempty"`
	Hit         bool   `json:"hit"`
	Occurrences int    `json:"occurrences"`
	Status      string `json:"status"`
}

type FeedbackPayload struct {
	Text string `json:"text"`
}

type ScorePayload struct {
	Label string `json:"label"`
}

type SoundPayload struct {
	Kind string `json:"kind"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
