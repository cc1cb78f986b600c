package registry

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/roastme-app/battle-service/internal/domain"
)

// Judge scores a roast message in [0,100].
type Judge interface {
	Score(message string) int
}

// Registry owns every active battle room and the user -> room index.
// State lives in process memory only; nothing survives a restart.
type Registry struct {
	mu        sync.RWMutex
	rooms     map[string]*domain.Room
	userRooms map[string]string // userID -> room code

	capacity  int
	maxRounds int
	judge     Judge
	rand      *rand.Rand
	now       func() time.Time
}

func New(capacity, maxRounds int, judge Judge) *Registry {
	return &Registry{
		rooms:     make(map[string]*domain.Room),
		userRooms: make(map[string]string),
		capacity:  capacity,
		maxRounds: maxRounds,
		judge:     judge,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// SetClock overrides the registry clock, for tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// CreateRoom opens a waiting room with the creator as sole participant.
func (r *Registry) CreateRoom(userID, displayName string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.userRooms[userID]; ok {
		return nil, domain.ErrAlreadyInRoom
	}

	room := &domain.Room{
		Code:      r.generateCode(),
		Status:    domain.StatusWaiting,
		Round:     0,
		MaxRounds: r.maxRounds,
		CreatedAt: r.now(),
		Participants: []*domain.Participant{{
			UserID:      userID,
			DisplayName: displayName,
			JoinedAt:    r.now(),
		}},
	}

	r.rooms[room.Code] = room
	r.userRooms[userID] = room.Code

	return room.Clone(), nil
}

// JoinRoom adds a participant to a waiting room. Re-joining with the same
// userID is idempotent and returns the room unchanged.
func (r *Registry) JoinRoom(code, userID, displayName string) (*domain.Room, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if room.FindParticipant(userID) != nil {
		return room.Clone(), nil
	}
	if _, ok := r.userRooms[userID]; ok {
		return nil, domain.ErrAlreadyInRoom
	}
	if room.Status != domain.StatusWaiting {
		return nil, domain.ErrRoomNotJoinable
	}
	if len(room.Participants) >= r.capacity {
		return nil, domain.ErrRoomFull
	}
	if room.HasDisplayName(displayName) {
		return nil, domain.ErrDuplicateName
	}

	room.Participants = append(room.Participants, &domain.Participant{
		UserID:      userID,
		DisplayName: displayName,
		JoinedAt:    r.now(),
	})
	r.userRooms[userID] = code

	return room.Clone(), nil
}

// LeaveRoom removes the user from their room and deletes the room if it
// empties. It returns the room code, the remaining state (nil when the room
// was deleted) and whether a removal happened.
func (r *Registry) LeaveRoom(userID string) (string, *domain.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.userRooms[userID]
	if !ok {
		return "", nil, false
	}
	delete(r.userRooms, userID)

	room, ok := r.rooms[code]
	if !ok {
		return code, nil, false
	}

	kept := room.Participants[:0]
	for _, p := range room.Participants {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	room.Participants = kept

	if len(room.Participants) == 0 {
		delete(r.rooms, code)
		return code, nil, true
	}
	return code, room.Clone(), true
}

// SetReady flips the user's ready flag and returns the updated room.
func (r *Registry) SetReady(userID string, ready bool) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, err := r.roomOfLocked(userID)
	if err != nil {
		return nil, err
	}
	room.FindParticipant(userID).Ready = ready

	return room.Clone(), nil
}

func (r *Registry) CanStart(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	return ok && room.Status == domain.StatusWaiting && room.CanStart()
}

// StartGame moves a waiting room to active, round 1.
func (r *Registry) StartGame(code string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if room.Status != domain.StatusWaiting || !room.CanStart() {
		return nil, domain.ErrNotReady
	}

	room.Status = domain.StatusActive
	room.Round = 1

	return room.Clone(), nil
}

// SubmitRoast scores the message, logs it and bumps the author's total.
func (r *Registry) SubmitRoast(userID, text, targetID string) (*domain.Submission, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, err := r.roomOfLocked(userID)
	if err != nil {
		return nil, err
	}
	if room.Status != domain.StatusActive {
		return nil, domain.ErrRoomNotActive
	}

	p := room.FindParticipant(userID)
	score := r.judge.Score(text)

	p.Roasts = append(p.Roasts, text)
	p.Score += score
	room.Roasts = append(room.Roasts, domain.RoastEvent{
		Author:    p.DisplayName,
		Text:      text,
		Score:     score,
		Timestamp: r.now(),
	})

	return &domain.Submission{
		PlayerID:  userID,
		TargetID:  targetID,
		Text:      text,
		Score:     score,
		Timestamp: r.now(),
	}, nil
}

// AdvanceRound increments the round; crossing maxRounds finishes the game.
func (r *Registry) AdvanceRound(code string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if room.Status != domain.StatusActive {
		return nil, domain.ErrRoomNotActive
	}

	room.Round++
	if room.Round > room.MaxRounds {
		room.Status = domain.StatusFinished
	}

	return room.Clone(), nil
}

// Leaderboard ranks participants by score descending, ties by join order.
func (r *Registry) Leaderboard(code string) ([]domain.LeaderboardEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return leaderboardOf(room), nil
}

func leaderboardOf(room *domain.Room) []domain.LeaderboardEntry {
	ranked := append([]*domain.Participant(nil), room.Participants...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	entries := make([]domain.LeaderboardEntry, 0, len(ranked))
	for i, p := range ranked {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Score:       p.Score,
			Rank:        i + 1,
		})
	}
	return entries
}

func (r *Registry) GetRoom(code string) (*domain.Room, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (r *Registry) GetRoomByUser(userID string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, err := r.roomOfLocked(userID)
	if err != nil {
		return nil, err
	}
	return room.Clone(), nil
}

func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// SweepExpired evicts every room older than maxAge, occupied or not, and
// unindexes its members. Returns the number of rooms evicted.
func (r *Registry) SweepExpired(now time.Time, maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for code, room := range r.rooms {
		if now.Sub(room.CreatedAt) <= maxAge {
			continue
		}
		for _, p := range room.Participants {
			delete(r.userRooms, p.UserID)
		}
		delete(r.rooms, code)
		evicted++
	}
	return evicted
}

// roomOfLocked resolves the caller's current room. Callers hold r.mu.
func (r *Registry) roomOfLocked(userID string) (*domain.Room, error) {
	code, ok := r.userRooms[userID]
	if !ok {
		return nil, domain.ErrNotInRoom
	}
	room, ok := r.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}
