package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/sixmax/internal/analysis"
	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/internal/table"
	"github.com/lox/sixmax/poker"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// equitySamples is the Monte Carlo budget of an analyze request.
	equitySamples = 4000
)

// ErrConnectionClosed is returned when sending on a closed session.
var ErrConnectionClosed = websocket.ErrCloseSent

// Session is one hero playing one table over a WebSocket. Opponent turns
// are paced by the clock so a client can follow them.
type Session struct {
	id        string
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	clock     quartz.Clock
	delay     time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu    sync.Mutex
	table *table.Table
	timer *quartz.Timer
}

func newSession(id string, conn *websocket.Conn, tbl *table.Table, clock quartz.Clock, delay time.Duration, logger *log.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:     id,
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("session").With("session", id),
		clock:  clock,
		delay:  delay,
		ctx:    ctx,
		cancel: cancel,
		table:  tbl,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start begins handling the connection
func (s *Session) Start() {
	go s.writePump()
	go s.readPump()
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Close stops pending bot turns and closes the connection.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		s.mu.Unlock()
		close(s.send)
		err = s.conn.Close()
	})
	return err
}

// SendMessage queues msg for the client.
func (s *Session) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			s.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case s.send <- msg:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		s.logger.Warn("Connection send buffer full, closing connection")
		go func() { _ = s.Close() }()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (s *Session) readPump() {
	defer func() { _ = s.Close() }()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				s.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		if !s.handleMessage(&msg) {
			return
		}
	}
}

// writePump handles outgoing messages to the client
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(message); err != nil {
				s.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes one client message. It returns false when the
// session cannot continue.
func (s *Session) handleMessage(msg *Message) (ok bool) {
	s.logger.Debug("Received message", "type", msg.Type)
	defer s.recoverInvariant(msg.RequestID, &ok)

	switch msg.Type {
	case MessageTypeNewHand:
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, err := s.table.NewHand(); err != nil {
			s.sendError(msg.RequestID, err)
			return true
		}
		s.advance(msg.RequestID)

	case MessageTypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			s.sendErrorCode(msg.RequestID, ErrCodeInvalidMessage, "Failed to parse action data")
			return true
		}
		at, err := game.ParseActionType(data.Action)
		if err != nil {
			s.sendErrorCode(msg.RequestID, ErrCodeInvalidMessage, err.Error())
			return true
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.table.Act(game.Action{Seat: table.HeroSeat, Type: at, Amount: data.Amount}); err != nil {
			s.sendError(msg.RequestID, err)
			return true
		}
		s.advance(msg.RequestID)

	case MessageTypeAnalyze:
		s.analyze(msg.RequestID)

	default:
		s.sendErrorCode(msg.RequestID, ErrCodeInvalidMessage, fmt.Sprintf("unknown message type %q", msg.Type))
	}
	return true
}

// advance sends the new state and lets the bots play. With no delay they
// all act at once; otherwise one bot acts per tick. The next tick is
// scheduled before the state goes out. Callers hold s.mu.
func (s *Session) advance(requestID string) {
	if s.delay <= 0 {
		s.table.RunBots()
	} else if s.table.BotToAct() && s.ctx.Err() == nil {
		s.timer = s.clock.AfterFunc(s.delay, s.botTurn, "bot")
	}
	s.sendState(requestID)
}

func (s *Session) botTurn() {
	ok := true
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.recoverInvariant("", &ok)

	s.timer = nil
	if s.ctx.Err() != nil {
		return
	}
	if d, played := s.table.StepBot(); played {
		s.logger.Debug("Bot acted", "action", d.Action, "reasoning", d.Reasoning)
	}
	s.advance("")
}

// recoverInvariant turns an engine panic into an internal error and ends
// the session: the hand cannot be trusted after a broken invariant.
func (s *Session) recoverInvariant(requestID string, ok *bool) {
	r := recover()
	if r == nil {
		return
	}
	var ie *game.InvariantError
	if err, isErr := r.(error); !isErr || !errors.As(err, &ie) {
		panic(r)
	}
	s.logger.Error("Hand aborted", "error", ie)
	s.sendErrorCode(requestID, ErrCodeInternal, ie.Error())
	*ok = false
	go func() { _ = s.Close() }()
}

func (s *Session) analyze(requestID string) {
	s.mu.Lock()
	g := s.table.Hand()
	if g == nil {
		s.mu.Unlock()
		s.sendError(requestID, table.ErrNoHand)
		return
	}
	report, err := analysis.Analyze(g, table.HeroSeat)
	hole := append([]poker.Card(nil), g.Players[table.HeroSeat].Hole...)
	board := append([]poker.Card(nil), g.Board...)
	opponents := len(g.Contenders()) - 1
	seed := int64(g.HandID)
	inHand := g.Players[table.HeroSeat].InHand && !g.IsComplete()
	s.mu.Unlock()

	if err != nil {
		s.sendErrorCode(requestID, ErrCodeInternal, err.Error())
		return
	}
	data := AnalysisData{Report: report}
	if inHand && opponents > 0 {
		eq, err := analysis.EstimateEquity(s.ctx, analysis.EquityRequest{
			Hole:      hole,
			Board:     board,
			Opponents: opponents,
			Samples:   equitySamples,
			Seed:      seed,
		})
		if err != nil {
			s.logger.Warn("Equity estimate failed", "error", err)
		} else {
			data.Equity = &eq
		}
	}
	s.sendData(requestID, MessageTypeAnalysis, data)
}

func (s *Session) sendState(requestID string) {
	g := s.table.Hand()
	if g == nil {
		return
	}
	s.sendData(requestID, MessageTypeState, newStateData(g, table.HeroSeat, s.table.LastHistoryFile))
}

func (s *Session) sendData(requestID string, t MessageType, data any) {
	msg, err := NewMessage(t, data, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	msg.RequestID = requestID
	_ = s.SendMessage(msg)
}

func (s *Session) sendError(requestID string, err error) {
	s.sendErrorCode(requestID, errorCode(err), err.Error())
}

func (s *Session) sendErrorCode(requestID, code, message string) {
	s.sendData(requestID, MessageTypeError, ErrorData{Code: code, Message: message})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, table.ErrNotHeroTurn):
		return ErrCodeNotYourTurn
	case errors.Is(err, table.ErrNoHand):
		return ErrCodeNoHand
	case errors.Is(err, table.ErrHandInProgress):
		return ErrCodeHandInProgress
	case errors.Is(err, game.ErrHandComplete):
		return ErrCodeHandComplete
	case errors.Is(err, game.ErrIllegalAction):
		return ErrCodeIllegalAction
	default:
		return ErrCodeInternal
	}
}
