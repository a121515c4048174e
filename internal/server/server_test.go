package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sixmax/internal/config"
	"github.com/lox/sixmax/poker"
)

var quiet = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

// foldConfig seats fold bots everywhere and deals seed 42, which gives the
// hero Th 2h on the button with seat 3 first to act.
func foldConfig(delayMS int) *config.Config {
	c := config.Default()
	seed := int64(42)
	c.Tables[0].Seed = &seed
	c.Server.BotDelayMS = delayMS
	c.Bots = []config.BotConfig{{Name: "nits", Strategy: "fold", Seats: []int{1, 2, 3, 4, 5}}}
	return c
}

func startServer(t *testing.T, cfg *config.Config, clock quartz.Clock) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(cfg, "", quiet, clock)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, ts *httptest.Server) *testClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return &testClient{t: t, conn: conn}
}

func (c *testClient) send(typ MessageType, data any) {
	c.t.Helper()
	msg, err := NewMessage(typ, data, time.Now())
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.WriteJSON(msg))
}

func (c *testClient) read(want MessageType, into any) {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(c.t, c.conn.ReadJSON(&msg))
	require.Equal(c.t, want, msg.Type, "payload: %s", msg.Data)
	if into != nil {
		require.NoError(c.t, json.Unmarshal(msg.Data, into))
	}
}

func (c *testClient) state() StateData {
	c.t.Helper()
	var s StateData
	c.read(MessageTypeState, &s)
	return s
}

func (c *testClient) errorData() ErrorData {
	c.t.Helper()
	var e ErrorData
	c.read(MessageTypeError, &e)
	return e
}

func TestHealthz(t *testing.T) {
	_, ts := startServer(t, foldConfig(0), quartz.NewReal())

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 0, body["sessions"])
}

func TestPlayHand(t *testing.T) {
	srv, ts := startServer(t, foldConfig(0), quartz.NewReal())
	c := dial(t, ts)

	var welcome WelcomeData
	c.read(MessageTypeWelcome, &welcome)
	assert.NotEmpty(t, welcome.SessionID)
	assert.Equal(t, "main", welcome.Table)
	assert.Equal(t, 0, welcome.HeroSeat)
	assert.Equal(t, "fold", welcome.Strategies[3])
	assert.Eventually(t, func() bool { return srv.SessionCount() == 1 }, time.Second, 10*time.Millisecond)

	c.send(MessageTypeAction, ActionData{Action: "call"})
	assert.Equal(t, ErrCodeNoHand, c.errorData().Code)

	c.send(MessageTypeNewHand, nil)
	s := c.state()
	assert.Equal(t, 1, s.HandID)
	assert.Equal(t, 0, s.ToAct, "fold bots play straight through to the hero")
	assert.Equal(t, []string{"fold", "call", "raise"}, s.LegalActions)
	assert.Equal(t, 2, s.ToCall)
	assert.Equal(t, 4, s.MinRaise)
	assert.Equal(t, 200, s.MaxRaise)
	assert.Equal(t, poker.MustParseCards("Th 2h"), s.Seats[0].Hole)
	for _, seat := range s.Seats[1:] {
		assert.Nil(t, seat.Hole, "seat %d hole cards leaked", seat.Seat)
	}
	assert.Contains(t, s.Log, "Villain 5: folds")

	c.send(MessageTypeNewHand, nil)
	assert.Equal(t, ErrCodeHandInProgress, c.errorData().Code)

	c.send(MessageTypeAction, ActionData{Action: "raise", Amount: 6})
	s = c.state()
	require.True(t, s.Complete)
	assert.Equal(t, -1, s.ToAct)
	require.Len(t, s.Winners, 1)
	assert.Equal(t, 0, s.Winners[0].Seat)
	assert.Equal(t, 9, s.Winners[0].Amount)
	assert.Equal(t, 203, s.Seats[0].Stack)
	for _, seat := range s.Seats[1:] {
		assert.Nil(t, seat.Hole, "uncontested pots reveal nothing")
	}

	c.send(MessageTypeAction, ActionData{Action: "check"})
	assert.Equal(t, ErrCodeHandComplete, c.errorData().Code)

	c.send(MessageTypeNewHand, nil)
	s = c.state()
	assert.Equal(t, 2, s.HandID)
	assert.Equal(t, 1, s.Dealer)
}

func TestRejectsBadActions(t *testing.T) {
	_, ts := startServer(t, foldConfig(0), quartz.NewReal())
	c := dial(t, ts)
	c.read(MessageTypeWelcome, nil)

	c.send(MessageTypeNewHand, nil)
	c.state()

	c.send(MessageTypeAction, ActionData{Action: "dance"})
	assert.Equal(t, ErrCodeInvalidMessage, c.errorData().Code)

	c.send(MessageTypeAction, ActionData{Action: "check"})
	e := c.errorData()
	assert.Equal(t, ErrCodeIllegalAction, e.Code)
	assert.Contains(t, e.Message, "seat 0 cannot check")

	c.send(MessageType("shuffle"), nil)
	assert.Equal(t, ErrCodeInvalidMessage, c.errorData().Code)

	// The hand is untouched by rejected actions.
	c.send(MessageTypeAction, ActionData{Action: "fold"})
	assert.True(t, c.state().Complete)
}

func TestBotsArePacedByClock(t *testing.T) {
	mock := quartz.NewMock(t)
	_, ts := startServer(t, foldConfig(500), mock)
	c := dial(t, ts)
	c.read(MessageTypeWelcome, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.send(MessageTypeNewHand, nil)
	s := c.state()
	assert.Equal(t, 3, s.ToAct)
	assert.Empty(t, s.LegalActions)

	c.send(MessageTypeAction, ActionData{Action: "fold"})
	assert.Equal(t, ErrCodeNotYourTurn, c.errorData().Code)

	for _, next := range []int{4, 5, 0} {
		mock.Advance(500 * time.Millisecond).MustWait(ctx)
		s = c.state()
		assert.Equal(t, next, s.ToAct)
	}
	assert.Equal(t, []string{"fold", "call", "raise"}, s.LegalActions)

	c.send(MessageTypeAction, ActionData{Action: "call"})
	s = c.state()
	assert.Equal(t, 1, s.ToAct)

	mock.Advance(500 * time.Millisecond).MustWait(ctx)
	s = c.state()
	assert.Equal(t, 2, s.ToAct, "small blind folded")

	mock.Advance(500 * time.Millisecond).MustWait(ctx)
	s = c.state()
	assert.Equal(t, "flop", s.Street.String(), "big blind checked")
	assert.Len(t, s.Board, 3)
}

func TestWritesHandHistory(t *testing.T) {
	cfg := foldConfig(0)
	cfg.Server.HandHistoryDir = t.TempDir()
	_, ts := startServer(t, cfg, quartz.NewReal())
	c := dial(t, ts)
	c.read(MessageTypeWelcome, nil)

	c.send(MessageTypeNewHand, nil)
	assert.Empty(t, c.state().HistoryFile)
	c.send(MessageTypeAction, ActionData{Action: "fold"})
	s := c.state()
	require.True(t, s.Complete)
	require.NotEmpty(t, s.HistoryFile)

	data, err := os.ReadFile(s.HistoryFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `variant = "NT"`)
}

func TestAnalyze(t *testing.T) {
	_, ts := startServer(t, foldConfig(0), quartz.NewReal())
	c := dial(t, ts)
	c.read(MessageTypeWelcome, nil)

	c.send(MessageTypeAnalyze, nil)
	assert.Equal(t, ErrCodeNoHand, c.errorData().Code)

	c.send(MessageTypeNewHand, nil)
	c.state()

	c.send(MessageTypeAnalyze, nil)
	var a AnalysisData
	c.read(MessageTypeAnalysis, &a)
	assert.Equal(t, 0, a.Report.Seat)
	assert.Equal(t, 2, a.Report.ToCall)
	assert.Equal(t, poker.ClassTrash, a.Report.Class)
	assert.Nil(t, a.Report.Draw, "no draw count before the flop")
	require.NotNil(t, a.Equity)
	assert.Equal(t, equitySamples, a.Equity.Samples)
	assert.InDelta(t, 0.35, a.Equity.Share, 0.15, "T2s against two random hands")
}

func TestSessionsAreRemovedOnDisconnect(t *testing.T) {
	srv, ts := startServer(t, foldConfig(0), quartz.NewReal())
	c := dial(t, ts)
	c.read(MessageTypeWelcome, nil)
	require.Eventually(t, func() bool { return srv.SessionCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	c.conn.Close()
	assert.Eventually(t, func() bool { return srv.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestNewRejectsUnknownTable(t *testing.T) {
	_, err := New(config.Default(), "nope", quiet, quartz.NewReal())
	assert.ErrorContains(t, err, `no table named "nope"`)
}
