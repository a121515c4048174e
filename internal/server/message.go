package server

import (
	"encoding/json"
	"time"

	"github.com/lox/sixmax/internal/analysis"
	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/poker"
)

// MessageType identifies the payload of a Message.
type MessageType string

// Client → Server
const (
	MessageTypeNewHand MessageType = "new_hand"
	MessageTypeAction  MessageType = "action"
	MessageTypeAnalyze MessageType = "analyze"
)

// Server → Client
const (
	MessageTypeWelcome  MessageType = "welcome"
	MessageTypeState    MessageType = "state"
	MessageTypeAnalysis MessageType = "analysis"
	MessageTypeError    MessageType = "error"
)

// Error codes sent in ErrorData.
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeIllegalAction  = "illegal_action"
	ErrCodeNotYourTurn    = "not_your_turn"
	ErrCodeNoHand         = "no_hand"
	ErrCodeHandInProgress = "hand_in_progress"
	ErrCodeHandComplete   = "hand_complete"
	ErrCodeInternal       = "internal_error"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message stamped with now.
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return &Message{Type: messageType, Data: raw, Timestamp: now}, nil
}

// ActionData is the hero's decision.
type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// WelcomeData is sent once when the socket opens.
type WelcomeData struct {
	SessionID  string   `json:"sessionId"`
	Table      string   `json:"table"`
	HeroSeat   int      `json:"heroSeat"`
	Strategies []string `json:"strategies"`
}

// ErrorData reports a rejected request.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SeatView is one seat as the hero sees it.
type SeatView struct {
	Seat     int           `json:"seat"`
	Name     string        `json:"name"`
	Position game.Position `json:"position"`
	Stack    int           `json:"stack"`
	Bet      int           `json:"bet"`
	InHand   bool          `json:"inHand"`
	AllIn    bool          `json:"allIn"`
	Won      int           `json:"won,omitempty"`
	Hole     []poker.Card  `json:"hole,omitempty"`
}

// StateData is the hero's view of the hand. Opponent hole cards are only
// included for hands that reach a contested showdown. Log is the hand
// history so far, oldest first.
type StateData struct {
	HandID       int              `json:"handId"`
	Street       game.Street      `json:"street"`
	Dealer       int              `json:"dealer"`
	Board        []poker.Card     `json:"board"`
	Pot          int              `json:"pot"`
	CurrentBet   int              `json:"currentBet"`
	ToAct        int              `json:"toAct"`
	Seats        []SeatView       `json:"seats"`
	LegalActions []string         `json:"legalActions,omitempty"`
	ToCall       int              `json:"toCall,omitempty"`
	MinRaise     int              `json:"minRaise,omitempty"`
	MaxRaise     int              `json:"maxRaise,omitempty"`
	LastAction   *game.LastAction `json:"lastAction,omitempty"`
	Log          []string         `json:"log"`
	Complete     bool             `json:"complete"`
	Winners      []game.Winner    `json:"winners,omitempty"`
	HistoryFile  string           `json:"historyFile,omitempty"`
}

// AnalysisData carries the hero's hand analysis and equity estimate.
type AnalysisData struct {
	Report analysis.Report  `json:"report"`
	Equity *analysis.Equity `json:"equity,omitempty"`
}

// newStateData builds the view of g for viewer.
func newStateData(g *game.GameState, viewer int, historyFile string) StateData {
	s := StateData{
		HandID:      g.HandID,
		Street:      g.Street,
		Dealer:      g.DealerIndex,
		Board:       g.Board,
		Pot:         g.Pot,
		CurrentBet:  g.CurrentBet,
		ToAct:       g.ToActIndex,
		Seats:       make([]SeatView, len(g.Players)),
		LastAction:  g.LastAction,
		Log:         make([]string, 0, len(g.History)),
		Complete:    g.IsComplete(),
		Winners:     g.Winners,
		HistoryFile: historyFile,
	}
	shown := s.Complete && len(g.Contenders()) > 1
	if s.Board == nil {
		s.Board = []poker.Card{}
	}
	for i, p := range g.Players {
		v := SeatView{
			Seat:     p.Seat,
			Name:     p.Name,
			Position: p.Position,
			Stack:    p.Stack,
			Bet:      p.ContributedThisStreet,
			InHand:   p.InHand,
			AllIn:    p.AllIn,
			Won:      p.Won,
		}
		if p.Seat == viewer || (shown && p.InHand) {
			v.Hole = p.Hole
		}
		s.Seats[i] = v
	}
	if g.ToActIndex == viewer {
		for _, a := range g.LegalActions() {
			s.LegalActions = append(s.LegalActions, a.String())
			if a == game.Raise {
				s.MinRaise, s.MaxRaise = g.RaiseRange(viewer)
			}
		}
		s.ToCall = g.ToCall(viewer)
	}
	for _, ev := range g.History {
		s.Log = append(s.Log, ev.Text)
	}
	return s
}
