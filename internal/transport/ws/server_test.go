package ws

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/roastme-app/battle-service/internal/domain"
	"github.com/roastme-app/battle-service/internal/registry"
	"github.com/roastme-app/battle-service/internal/service"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, maxRounds int) *httptest.Server {
	t.Helper()

	reg := registry.New(6, maxRounds, service.NewJudge(rand.New(rand.NewSource(1))))
	srv := NewServer(NewHub(), reg, service.NewMoodEngine(),
		service.NewRoastGenerator(rand.New(rand.NewSource(1))), 10*time.Millisecond)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWS)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, userID, username string) *websocket.Conn {
	t.Helper()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?user_id=" + userID + "&username=" + username
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Message{Type: typ, Payload: payload}))
}

func read(t *testing.T, conn *websocket.Conn) event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func readTyped(t *testing.T, conn *websocket.Conn, want string, dst interface{}) {
	t.Helper()

	ev := read(t, conn)
	require.Equal(t, want, ev.Type)
	if dst != nil {
		require.NoError(t, json.Unmarshal(ev.Payload, dst))
	}
}

// createRoom drives room:create and returns the new room code.
func createRoom(t *testing.T, conn *websocket.Conn) string {
	t.Helper()

	send(t, conn, TypeRoomCreate, CreateRoomPayload{})
	var room RoomPayload
	readTyped(t, conn, TypeRoomCreated, &room)
	require.Len(t, room.RoomCode, 6)
	return room.RoomCode
}

func TestCreateAndJoinRoom(t *testing.T) {
	ts := newTestServer(t, 5)

	alice := dial(t, ts, "u1", "Alice")
	code := createRoom(t, alice)

	bob := dial(t, ts, "u2", "Bob")
	send(t, bob, TypeRoomJoin, JoinRoomPayload{RoomCode: code})

	var joined RoomPayload
	readTyped(t, bob, TypeRoomJoined, &joined)
	assert.Equal(t, code, joined.RoomCode)
	assert.Equal(t, string(domain.StatusWaiting), joined.Status)
	require.Len(t, joined.Players, 2)
	assert.Equal(t, "Alice", joined.Players[0].Username)
	assert.Equal(t, "Bob", joined.Players[1].Username)

	var delta PlayerEventPayload
	readTyped(t, alice, TypePlayerJoined, &delta)
	assert.Equal(t, "u2", delta.UserID)
	assert.Len(t, delta.Players, 2)
}

func TestJoinUnknownRoom(t *testing.T) {
	ts := newTestServer(t, 5)

	bob := dial(t, ts, "u2", "Bob")
	send(t, bob, TypeRoomJoin, JoinRoomPayload{RoomCode: "AAAAAA"})

	var errPayload ErrorPayload
	readTyped(t, bob, TypeError, &errPayload)
	assert.Equal(t, domain.ErrRoomNotFound.Error(), errPayload.Message)
}

func TestReadyCascadeStartsGame(t *testing.T) {
	ts := newTestServer(t, 5)

	alice := dial(t, ts, "u1", "Alice")
	code := createRoom(t, alice)

	bob := dial(t, ts, "u2", "Bob")
	send(t, bob, TypeRoomJoin, JoinRoomPayload{RoomCode: code})
	readTyped(t, bob, TypeRoomJoined, nil)
	readTyped(t, alice, TypePlayerJoined, nil)

	send(t, alice, TypePlayerReady, ReadyPayload{Ready: true})
	var ready ReadyEventPayload
	readTyped(t, alice, TypePlayerReady, &ready)
	assert.Equal(t, "u1", ready.UserID)
	assert.True(t, ready.Ready)
	readTyped(t, bob, TypePlayerReady, nil)

	send(t, bob, TypePlayerReady, ReadyPayload{Ready: true})
	readTyped(t, alice, TypePlayerReady, nil)
	readTyped(t, bob, TypePlayerReady, nil)

	var started RoomPayload
	readTyped(t, alice, TypeGameStarted, &started)
	assert.Equal(t, string(domain.StatusActive), started.Status)
	assert.Equal(t, 1, started.Round)
	readTyped(t, bob, TypeGameStarted, nil)
}

func TestRoastSubmitBroadcasts(t *testing.T) {
	ts := newTestServer(t, 5)
	alice, bob := startGame(t, ts)

	send(t, alice, TypeRoastSubmit, RoastSubmitPayload{Message: "your wifi has better connections than you"})

	var roast RoastItem
	readTyped(t, bob, TypeRoastEvent, &roast)
	assert.Equal(t, "Alice", roast.Username)
	assert.NotEmpty(t, roast.Feedback)
	assert.GreaterOrEqual(t, roast.Score, 0)
	assert.LessOrEqual(t, roast.Score, 100)

	var lb LeaderboardPayload
	readTyped(t, bob, TypeLeaderboard, &lb)
	require.Len(t, lb.Leaderboard, 2)
	assert.Equal(t, 1, lb.Leaderboard[0].Rank)
	assert.Equal(t, "Alice", lb.Leaderboard[0].Username)

	var score ScorePayload
	readTyped(t, bob, TypeScoreUpdate, &score)
	assert.Equal(t, "u1", score.UserID)
	assert.Equal(t, roast.Score, score.Score)

	// The submitter sees the same three events.
	readTyped(t, alice, TypeRoastEvent, nil)
	readTyped(t, alice, TypeLeaderboard, nil)
	readTyped(t, alice, TypeScoreUpdate, nil)
}

func TestEmptyRoastRejected(t *testing.T) {
	ts := newTestServer(t, 5)
	alice, _ := startGame(t, ts)

	send(t, alice, TypeRoastSubmit, RoastSubmitPayload{Message: "   "})

	var errPayload ErrorPayload
	readTyped(t, alice, TypeError, &errPayload)
	assert.Equal(t, domain.ErrEmptyMessage.Error(), errPayload.Message)
}

func TestNextRoundEndsGame(t *testing.T) {
	ts := newTestServer(t, 1)
	alice, bob := startGame(t, ts)

	send(t, alice, TypeNextRound, nil)

	var ended GameEndPayload
	readTyped(t, alice, TypeGameEnded, &ended)
	assert.Equal(t, string(domain.StatusFinished), ended.Room.Status)
	require.Len(t, ended.Leaderboard, 2)
	readTyped(t, bob, TypeGameEnded, nil)
}

func TestLeaveRoomBroadcastsToOthers(t *testing.T) {
	ts := newTestServer(t, 5)

	alice := dial(t, ts, "u1", "Alice")
	code := createRoom(t, alice)

	bob := dial(t, ts, "u2", "Bob")
	send(t, bob, TypeRoomJoin, JoinRoomPayload{RoomCode: code})
	readTyped(t, bob, TypeRoomJoined, nil)
	readTyped(t, alice, TypePlayerJoined, nil)

	send(t, bob, TypeRoomLeave, nil)
	readTyped(t, bob, TypeRoomLeft, nil)

	var left PlayerEventPayload
	readTyped(t, alice, TypePlayerLeft, &left)
	assert.Equal(t, "u2", left.UserID)
	assert.Len(t, left.Players, 1)
}

func TestNextRoundOutsideRoom(t *testing.T) {
	ts := newTestServer(t, 5)

	conn := dial(t, ts, "u9", "Ghost")
	send(t, conn, TypeNextRound, nil)

	var errPayload ErrorPayload
	readTyped(t, conn, TypeError, &errPayload)
	assert.Equal(t, domain.ErrNotInRoom.Error(), errPayload.Message)
}

func TestChatMoodAndDelayedReply(t *testing.T) {
	ts := newTestServer(t, 5)

	conn := dial(t, ts, "u1", "Alice")
	send(t, conn, TypeChatMessage, ChatMessagePayload{Text: "haha that joke was hilarious lol"})

	var echo ChatResponsePayload
	readTyped(t, conn, TypeChatResponse, &echo)
	assert.Equal(t, "u1", echo.UserID)
	assert.Equal(t, "haha that joke was hilarious lol", echo.Text)
	assert.Equal(t, string(service.MoodFunny), echo.Mood)

	var mood MoodUpdatePayload
	readTyped(t, conn, TypeMoodUpdate, &mood)
	assert.Equal(t, string(service.MoodFunny), mood.Mood)
	assert.Greater(t, mood.Confidence, 0.0)

	var reply ChatResponsePayload
	readTyped(t, conn, TypeChatResponse, &reply)
	assert.Equal(t, "ai", reply.UserID)
	assert.Equal(t, aiUsername, reply.Username)
	assert.NotEmpty(t, reply.Text)
}

func TestUnknownEventType(t *testing.T) {
	ts := newTestServer(t, 5)

	conn := dial(t, ts, "u1", "Alice")
	send(t, conn, "room:destroy", nil)

	readTyped(t, conn, TypeError, nil)
}

// startGame connects Alice and Bob, joins them into one room and readies both,
// returning the two connections with the game active and event queues drained.
func startGame(t *testing.T, ts *httptest.Server) (alice, bob *websocket.Conn) {
	t.Helper()

	alice = dial(t, ts, "u1", "Alice")
	code := createRoom(t, alice)

	bob = dial(t, ts, "u2", "Bob")
	send(t, bob, TypeRoomJoin, JoinRoomPayload{RoomCode: code})
	readTyped(t, bob, TypeRoomJoined, nil)
	readTyped(t, alice, TypePlayerJoined, nil)

	send(t, alice, TypePlayerReady, ReadyPayload{Ready: true})
	readTyped(t, alice, TypePlayerReady, nil)
	readTyped(t, bob, TypePlayerReady, nil)

	send(t, bob, TypePlayerReady, ReadyPayload{Ready: true})
	readTyped(t, alice, TypePlayerReady, nil)
	readTyped(t, bob, TypePlayerReady, nil)
	readTyped(t, alice, TypeGameStarted, nil)
	readTyped(t, bob, TypeGameStarted, nil)
	return alice, bob
}
