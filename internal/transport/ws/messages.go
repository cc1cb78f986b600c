package ws

import (
	"github.com/roastme-app/battle-service/internal/domain"
)

// Client -> server event types.
const (
	TypeRegister       = "user:register"
	TypeRoomCreate     = "room:create"
	TypeRoomJoin       = "room:join"
	TypeRoomLeave      = "room:leave"
	TypePlayerReady    = "player:ready" // also echoed back as the broadcast
	TypeRoastSubmit    = "roast:submit"
	TypeNextRound      = "game:next-round"
	TypeLeaderboardGet = "leaderboard:get"
	TypeChatMessage    = "chat:message"
)

// Server -> client event types.
const (
	TypeRoomCreated  = "room:created"
	TypeRoomJoined   = "room:joined"
	TypeRoomLeft     = "room:left"
	TypePlayerJoined = "player:joined"
	TypePlayerLeft   = "player:left"
	TypeGameStarted  = "game:started"
	TypeGameUpdate   = "game:update"
	TypeGameEnded    = "game:ended"
	TypeRoastEvent   = "roast:received"
	TypeLeaderboard  = "leaderboard:update"
	TypeScoreUpdate  = "score:update"
	TypeChatResponse = "chat:response"
	TypeMoodUpdate   = "mood:update"
	TypeError        = "error"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type RegisterPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type CreateRoomPayload struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

type ReadyPayload struct {
	Ready bool `json:"ready"`
}

type RoastSubmitPayload struct {
	Message  string `json:"message"`
	TargetID string `json:"target_id,omitempty"`
}

type ChatMessagePayload struct {
	Text string `json:"text"`
}

type PlayerItem struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Ready    bool   `json:"ready"`
}

type RoastItem struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback,omitempty"`
	TSUnix   int64  `json:"ts_unix"`
}

type RoomPayload struct {
	RoomCode  string       `json:"room_code"`
	Status    string       `json:"status"`
	Round     int          `json:"round"`
	MaxRounds int          `json:"max_rounds"`
	Players   []PlayerItem `json:"players"`
	Roasts    []RoastItem  `json:"roasts,omitempty"`
}

type PlayerEventPayload struct {
	RoomCode string       `json:"room_code"`
	UserID   string       `json:"user_id"`
	Username string       `json:"username"`
	Players  []PlayerItem `json:"players"`
}

type ReadyEventPayload struct {
	RoomCode string       `json:"room_code"`
	UserID   string       `json:"user_id"`
	Username string       `json:"username"`
	Ready    bool         `json:"ready"`
	Players  []PlayerItem `json:"players"`
}

type LeaderboardItem struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type LeaderboardPayload struct {
	Leaderboard []LeaderboardItem `json:"leaderboard"`
}

type ScorePayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type GameEndPayload struct {
	Room        RoomPayload       `json:"room"`
	Leaderboard []LeaderboardItem `json:"leaderboard"`
}

type ChatResponsePayload struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Text     string `json:"text"`
	Mood     string `json:"mood"`
	TSUnix   int64  `json:"ts_unix"`
}

type MoodUpdatePayload struct {
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`
	TSUnix     int64   `json:"ts_unix"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// --- domain converters ---

func playerItems(room *domain.Room) []PlayerItem {
	items := make([]PlayerItem, 0, len(room.Participants))
	for _, p := range room.Participants {
		items = append(items, PlayerItem{
			UserID:   p.UserID,
			Username: p.DisplayName,
			Score:    p.Score,
			Ready:    p.Ready,
		})
	}
	return items
}

func roomPayload(room *domain.Room, withRoasts bool) RoomPayload {
	out := RoomPayload{
		RoomCode:  room.Code,
		Status:    string(room.Status),
		Round:     room.Round,
		MaxRounds: room.MaxRounds,
		Players:   playerItems(room),
	}
	if withRoasts {
		out.Roasts = make([]RoastItem, 0, len(room.Roasts))
		for _, e := range room.Roasts {
			out.Roasts = append(out.Roasts, RoastItem{
				Username: e.Author,
				Message:  e.Text,
				Score:    e.Score,
				TSUnix:   e.Timestamp.Unix(),
			})
		}
	}
	return out
}

func leaderboardItems(entries []domain.LeaderboardEntry) []LeaderboardItem {
	items := make([]LeaderboardItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, LeaderboardItem{
			Rank:     e.Rank,
			UserID:   e.UserID,
			Username: e.DisplayName,
			Score:    e.Score,
		})
	}
	return items
}
