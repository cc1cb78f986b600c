package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/roastme-app/battle-service/internal/domain"
	"github.com/roastme-app/battle-service/internal/registry"
	"github.com/roastme-app/battle-service/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const aiUsername = "RoastMe AI"

// Server is the realtime gateway: it binds each connection to at most one
// room and translates inbound events into registry calls, fanning resulting
// state out to the room's channel.
type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	registry *registry.Registry
	moods    *service.MoodEngine
	roasts   *service.RoastGenerator

	replyDelay time.Duration
	pingEvery  time.Duration
}

func NewServer(hub *Hub, reg *registry.Registry, moods *service.MoodEngine, roasts *service.RoastGenerator, replyDelay time.Duration) *Server {
	return &Server{
		hub:      hub,
		registry: reg,
		moods:    moods,
		roasts:   roasts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		replyDelay: replyDelay,
		pingEvery:  15 * time.Second,
	}
}

// WS endpoint: GET /ws?user_id=...&username=...
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newClient(conn)
	q := r.URL.Query()
	c.userID = strings.TrimSpace(q.Get("user_id"))
	c.username = strings.TrimSpace(q.Get("username"))

	slog.Info("client connected", "user", c.userID)

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)

	s.handleDisconnect(c)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "user", c.userID, "err", err)
	}
	slog.Info("client disconnected", "user", c.userID)
}

func (s *Server) readLoop(c *client) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(c, "invalid message")
			continue
		}
		s.dispatch(c, msg)
	}
}

func (s *Server) writeLoop(ctx context.Context, c *client) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

func (s *Server) dispatch(c *client, msg Message) {
	switch msg.Type {
	case TypeRegister:
		var p RegisterPayload
		if decode(msg.Payload, &p) == nil {
			s.handleRegister(c, p)
		}
	case TypeRoomCreate:
		var p CreateRoomPayload
		if decode(msg.Payload, &p) == nil {
			s.handleCreate(c, p)
		}
	case TypeRoomJoin:
		var p JoinRoomPayload
		if decode(msg.Payload, &p) == nil {
			s.handleJoin(c, p)
		}
	case TypeRoomLeave:
		s.handleLeave(c)
	case TypePlayerReady:
		var p ReadyPayload
		if decode(msg.Payload, &p) == nil {
			s.handleReady(c, p)
		}
	case TypeRoastSubmit:
		var p RoastSubmitPayload
		if decode(msg.Payload, &p) == nil {
			s.handleRoast(c, p)
		}
	case TypeNextRound:
		s.handleNextRound(c)
	case TypeLeaderboardGet:
		s.handleLeaderboard(c)
	case TypeChatMessage:
		var p ChatMessagePayload
		if decode(msg.Payload, &p) == nil {
			s.handleChat(c, p)
		}
	default:
		s.sendError(c, "unknown event type")
	}
}

func (s *Server) handleRegister(c *client, p RegisterPayload) {
	if p.UserID != "" {
		c.userID = p.UserID
	}
	if p.Username != "" {
		c.username = p.Username
	}
	slog.Info("user registered", "user", c.userID, "username", c.username)
}

func (s *Server) handleCreate(c *client, p CreateRoomPayload) {
	s.adoptIdentity(c, p.UserID, p.Username)
	if !s.requireIdentity(c) {
		return
	}
	if c.roomCode != "" {
		s.sendError(c, domain.ErrAlreadyInRoom.Error())
		return
	}

	room, err := s.registry.CreateRoom(c.userID, c.username)
	if err != nil {
		s.sendError(c, err.Error())
		return
	}

	c.roomCode = room.Code
	s.hub.Join(room.Code, c)
	_ = c.Send(Message{Type: TypeRoomCreated, Payload: roomPayload(room, false)})

	slog.Info("room created", "room", room.Code, "user", c.userID)
}

func (s *Server) handleJoin(c *client, p JoinRoomPayload) {
	s.adoptIdentity(c, p.UserID, p.Username)
	if !s.requireIdentity(c) {
		return
	}
	if c.roomCode != "" {
		s.sendError(c, domain.ErrAlreadyInRoom.Error())
		return
	}

	// A reconnecting user is already a member; suppress the join delta then.
	prev, _ := s.registry.GetRoomByUser(c.userID)

	room, err := s.registry.JoinRoom(p.RoomCode, c.userID, c.username)
	if err != nil {
		s.sendError(c, err.Error())
		return
	}

	c.roomCode = room.Code
	s.hub.Join(room.Code, c)
	_ = c.Send(Message{Type: TypeRoomJoined, Payload: roomPayload(room, true)})

	if prev == nil || prev.Code != room.Code {
		s.hub.BroadcastExcept(room.Code, Message{
			Type: TypePlayerJoined,
			Payload: PlayerEventPayload{
				RoomCode: room.Code,
				UserID:   c.userID,
				Username: c.username,
				Players:  playerItems(room),
			},
		}, c)
	}

	slog.Info("player joined", "room", room.Code, "user", c.userID)
}

func (s *Server) handleLeave(c *client) {
	code, room, left := s.registry.LeaveRoom(c.userID)
	if !left {
		s.sendError(c, domain.ErrNotInRoom.Error())
		return
	}

	s.hub.Leave(code, c)
	c.roomCode = ""

	if room != nil {
		s.hub.Broadcast(code, Message{
			Type: TypePlayerLeft,
			Payload: PlayerEventPayload{
				RoomCode: code,
				UserID:   c.userID,
				Username: c.username,
				Players:  playerItems(room),
			},
		})
	} else {
		slog.Info("room deleted", "room", code)
	}

	_ = c.Send(Message{Type: TypeRoomLeft})
}

func (s *Server) handleReady(c *client, p ReadyPayload) {
	room, err := s.registry.SetReady(c.userID, p.Ready)
	if err != nil {
		s.sendError(c, err.Error())
		return
	}

	s.hub.Broadcast(room.Code, Message{
		Type: TypePlayerReady,
		Payload: ReadyEventPayload{
			RoomCode: room.Code,
			UserID:   c.userID,
			Username: c.username,
			Ready:    p.Ready,
			Players:  playerItems(room),
		},
	})

	// Everyone ready starts the game without a separate client action.
	if s.registry.CanStart(room.Code) {
		started, err := s.registry.StartGame(room.Code)
		if err != nil {
			slog.Warn("auto start failed", "room", room.Code, "err", err)
			return
		}
		s.hub.Broadcast(room.Code, Message{Type: TypeGameStarted, Payload: roomPayload(started, false)})
		slog.Info("game started", "room", room.Code)
	}
}

func (s *Server) handleRoast(c *client, p RoastSubmitPayload) {
	sub, err := s.registry.SubmitRoast(c.userID, p.Message, p.TargetID)
	if err != nil {
		s.sendError(c, err.Error())
		return
	}

	room, err := s.registry.GetRoomByUser(c.userID)
	if err != nil {
		return
	}

	s.hub.Broadcast(room.Code, Message{
		Type: TypeRoastEvent,
		Payload: RoastItem{
			Username: c.username,
			Message:  sub.Text,
			Score:    sub.Score,
			Feedback: service.Feedback(sub.Score),
			TSUnix:   sub.Timestamp.Unix(),
		},
	})

	if lb, err := s.registry.Leaderboard(room.Code); err == nil {
		s.hub.Broadcast(room.Code, Message{
			Type:    TypeLeaderboard,
			Payload: LeaderboardPayload{Leaderboard: leaderboardItems(lb)},
		})
	}
	if player := room.FindParticipant(c.userID); player != nil {
		s.hub.Broadcast(room.Code, Message{
			Type: TypeScoreUpdate,
			Payload: ScorePayload{
				UserID:   c.userID,
				Username: player.DisplayName,
				Score:    player.Score,
			},
		})
	}

	slog.Info("roast scored", "room", room.Code, "user", c.userID, "score", sub.Score)
}

func (s *Server) handleNextRound(c *client) {
	if c.roomCode == "" {
		s.sendError(c, domain.ErrNotInRoom.Error())
		return
	}

	room, err := s.registry.AdvanceRound(c.roomCode)
	if err != nil {
		s.sendError(c, err.Error())
		return
	}

	if room.Status == domain.StatusFinished {
		lb, _ := s.registry.Leaderboard(room.Code)
		s.hub.Broadcast(room.Code, Message{
			Type: TypeGameEnded,
			Payload: GameEndPayload{
				Room:        roomPayload(room, false),
				Leaderboard: leaderboardItems(lb),
			},
		})
		slog.Info("game ended", "room", room.Code)
		return
	}
	s.hub.Broadcast(room.Code, Message{Type: TypeGameUpdate, Payload: roomPayload(room, false)})
}

func (s *Server) handleLeaderboard(c *client) {
	if c.roomCode == "" {
		s.sendError(c, domain.ErrNotInRoom.Error())
		return
	}
	lb, err := s.registry.Leaderboard(c.roomCode)
	if err != nil {
		s.sendError(c, err.Error())
		return
	}
	_ = c.Send(Message{
		Type:    TypeLeaderboard,
		Payload: LeaderboardPayload{Leaderboard: leaderboardItems(lb)},
	})
}

// handleChat runs the mood/roast side channel, outside the battle rooms.
func (s *Server) handleChat(c *client, p ChatMessagePayload) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		s.sendError(c, domain.ErrEmptyMessage.Error())
		return
	}

	mood := s.moods.Detect(text)
	now := time.Now()

	_ = c.Send(Message{
		Type: TypeChatResponse,
		Payload: ChatResponsePayload{
			ID:       uuid.NewString(),
			UserID:   c.userID,
			Username: c.username,
			Text:     text,
			Mood:     string(mood.Mood),
			TSUnix:   now.UnixMilli(),
		},
	})
	_ = c.Send(Message{
		Type: TypeMoodUpdate,
		Payload: MoodUpdatePayload{
			Mood:       string(mood.Mood),
			Confidence: mood.Confidence,
			TSUnix:     now.UnixMilli(),
		},
	})

	roast := s.roasts.Generate(service.IntensityForMood(mood.Mood), mood.Mood, text, c.username)

	// Artificial latency before the canned reply. Fire-and-forget: sending
	// to a connection that has since closed is a silent no-op.
	time.AfterFunc(s.replyDelay, func() {
		_ = c.Send(Message{
			Type: TypeChatResponse,
			Payload: ChatResponsePayload{
				ID:       uuid.NewString(),
				UserID:   "ai",
				Username: aiUsername,
				Text:     roast.Text,
				Mood:     string(service.MoodFunny),
				TSUnix:   time.Now().UnixMilli(),
			},
		})
	})
}

func (s *Server) handleDisconnect(c *client) {
	if c.roomCode == "" {
		return
	}

	code, room, left := s.registry.LeaveRoom(c.userID)
	s.hub.Leave(c.roomCode, c)
	c.roomCode = ""

	if !left {
		return
	}
	if room != nil {
		s.hub.Broadcast(code, Message{
			Type: TypePlayerLeft,
			Payload: PlayerEventPayload{
				RoomCode: code,
				UserID:   c.userID,
				Username: c.username,
				Players:  playerItems(room),
			},
		})
	} else {
		slog.Info("room deleted", "room", code)
	}
}

// --- helpers ---

func (s *Server) adoptIdentity(c *client, userID, username string) {
	if userID != "" {
		c.userID = userID
	}
	if username != "" {
		c.username = username
	}
}

func (s *Server) requireIdentity(c *client) bool {
	if c.userID == "" || c.username == "" {
		s.sendError(c, "user identity required")
		return false
	}
	return true
}

func (s *Server) sendError(c *client, message string) {
	_ = c.Send(Message{Type: TypeError, Payload: ErrorPayload{Message: message}})
}

func decode(payload interface{}, dst interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

type client struct {
	conn   *websocket.Conn
	sendMu chan struct{}
	closed chan struct{}

	userID   string
	username string
	roomCode string
}

func newClient(c *websocket.Conn) *client {
	return &client{
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *client) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *client) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
