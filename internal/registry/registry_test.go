package registry

import (
	"strings"
	"testing"
	"time"

	"github.com/roastme-app/battle-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJudge struct {
	score int
}

func (s stubJudge) Score(string) int { return s.score }

func newTestRegistry() *Registry {
	return New(6, 5, stubJudge{score: 10})
}

func TestCreateRoom(t *testing.T) {
	r := newTestRegistry()

	room, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)

	assert.Len(t, room.Code, 6)
	for _, c := range room.Code {
		assert.Contains(t, codeAlphabet, string(c))
	}
	assert.Equal(t, domain.StatusWaiting, room.Status)
	assert.Equal(t, 0, room.Round)
	assert.Equal(t, 5, room.MaxRounds)
	require.Len(t, room.Participants, 1)
	assert.Equal(t, "Alice", room.Participants[0].DisplayName)
	assert.Equal(t, 0, room.Participants[0].Score)
	assert.False(t, room.Participants[0].Ready)

	indexed, err := r.GetRoomByUser("u1")
	require.NoError(t, err)
	assert.Equal(t, room.Code, indexed.Code)
}

func TestCreateRoomWhileAlreadyInRoom(t *testing.T) {
	r := newTestRegistry()

	_, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)

	_, err = r.CreateRoom("u1", "Alice")
	assert.ErrorIs(t, err, domain.ErrAlreadyInRoom)
}

func TestRoomCodesUniqueAmongActive(t *testing.T) {
	r := newTestRegistry()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		room, err := r.CreateRoom(userN(i), "Player"+userN(i))
		require.NoError(t, err)
		assert.False(t, seen[room.Code], "duplicate code %s", room.Code)
		seen[room.Code] = true
	}
}

func TestJoinRoom(t *testing.T) {
	r := newTestRegistry()
	room, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)

	t.Run("unknown code", func(t *testing.T) {
		_, err := r.JoinRoom("ZZZZZZ", "u2", "Bob")
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("malformed code", func(t *testing.T) {
		_, err := r.JoinRoom("nope", "u2", "Bob")
		assert.ErrorIs(t, err, domain.ErrInvalidCode)
	})

	t.Run("duplicate display name is case-insensitive", func(t *testing.T) {
		_, err := r.JoinRoom(room.Code, "u2", "ALICE")
		assert.ErrorIs(t, err, domain.ErrDuplicateName)

		got, err := r.GetRoom(room.Code)
		require.NoError(t, err)
		assert.Len(t, got.Participants, 1)
	})

	t.Run("success keeps join order", func(t *testing.T) {
		got, err := r.JoinRoom(strings.ToLower(room.Code), "u2", "Bob")
		require.NoError(t, err)
		require.Len(t, got.Participants, 2)
		assert.Equal(t, "Alice", got.Participants[0].DisplayName)
		assert.Equal(t, "Bob", got.Participants[1].DisplayName)
	})

	t.Run("idempotent re-join", func(t *testing.T) {
		first, err := r.JoinRoom(room.Code, "u2", "Bob")
		require.NoError(t, err)
		second, err := r.JoinRoom(room.Code, "u2", "Bob")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, second.Participants, 2)
	})

	t.Run("member of another room", func(t *testing.T) {
		other, err := r.CreateRoom("u9", "Zoe")
		require.NoError(t, err)
		_, err = r.JoinRoom(room.Code, "u9", "Zed")
		assert.ErrorIs(t, err, domain.ErrAlreadyInRoom)
		_ = other
	})
}

func TestJoinRoomFull(t *testing.T) {
	r := newTestRegistry()
	room, err := r.CreateRoom("u0", "Player0")
	require.NoError(t, err)

	for i := 1; i < 6; i++ {
		_, err := r.JoinRoom(room.Code, userN(i), "Player"+userN(i))
		require.NoError(t, err)
	}

	_, err = r.JoinRoom(room.Code, "u7", "Player7")
	assert.ErrorIs(t, err, domain.ErrRoomFull)
}

func TestJoinRoomNotJoinableWhenActive(t *testing.T) {
	r := newTestRegistry()
	room := startedRoom(t, r)

	_, err := r.JoinRoom(room.Code, "u3", "Carol")
	assert.ErrorIs(t, err, domain.ErrRoomNotJoinable)
}

func TestLeaveRoom(t *testing.T) {
	r := newTestRegistry()
	room, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)
	_, err = r.JoinRoom(room.Code, "u2", "Bob")
	require.NoError(t, err)

	code, remaining, left := r.LeaveRoom("u2")
	assert.True(t, left)
	assert.Equal(t, room.Code, code)
	require.NotNil(t, remaining)
	assert.Len(t, remaining.Participants, 1)

	_, _, left = r.LeaveRoom("u2")
	assert.False(t, left)

	code, remaining, left = r.LeaveRoom("u1")
	assert.True(t, left)
	assert.Equal(t, room.Code, code)
	assert.Nil(t, remaining, "empty room must be deleted")

	_, err = r.GetRoom(room.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestReadyGatingAndStart(t *testing.T) {
	r := newTestRegistry()
	room, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)

	_, err = r.SetReady("u1", true)
	require.NoError(t, err)
	assert.False(t, r.CanStart(room.Code), "one player can never start")

	_, err = r.StartGame(room.Code)
	assert.ErrorIs(t, err, domain.ErrNotReady)

	_, err = r.JoinRoom(room.Code, "u2", "Bob")
	require.NoError(t, err)
	assert.False(t, r.CanStart(room.Code), "all players must be ready")

	_, err = r.SetReady("u2", true)
	require.NoError(t, err)
	assert.True(t, r.CanStart(room.Code))

	started, err := r.StartGame(room.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, started.Status)
	assert.Equal(t, 1, started.Round)

	_, err = r.StartGame(room.Code)
	assert.ErrorIs(t, err, domain.ErrNotReady, "started room cannot start twice")
}

func TestSetReadyNotInRoom(t *testing.T) {
	r := newTestRegistry()
	_, err := r.SetReady("ghost", true)
	assert.ErrorIs(t, err, domain.ErrNotInRoom)
}

func TestAdvanceRoundFinishesGame(t *testing.T) {
	r := newTestRegistry()
	room := startedRoom(t, r)

	var last *domain.Room
	for i := 0; i < 5; i++ {
		var err error
		last, err = r.AdvanceRound(room.Code)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.StatusFinished, last.Status)
	assert.Equal(t, 6, last.Round)

	_, err := r.AdvanceRound(room.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotActive)

	_, err = r.SubmitRoast("u1", "still here?", "u2")
	assert.ErrorIs(t, err, domain.ErrRoomNotActive)
}

func TestSubmitRoast(t *testing.T) {
	r := newTestRegistry()
	room := startedRoom(t, r)

	t.Run("empty message", func(t *testing.T) {
		_, err := r.SubmitRoast("u1", "   ", "u2")
		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	})

	t.Run("scores and logs", func(t *testing.T) {
		sub, err := r.SubmitRoast("u1", "nice haircut, said no one ever!", "u2")
		require.NoError(t, err)
		assert.Equal(t, 10, sub.Score)
		assert.Equal(t, "u2", sub.TargetID)

		got, err := r.GetRoom(room.Code)
		require.NoError(t, err)
		p := got.FindParticipant("u1")
		require.NotNil(t, p)
		assert.Equal(t, 10, p.Score)
		assert.Equal(t, []string{"nice haircut, said no one ever!"}, p.Roasts)
		require.Len(t, got.Roasts, 1)
		assert.Equal(t, "Alice", got.Roasts[0].Author)
	})

	t.Run("cumulative score", func(t *testing.T) {
		_, err := r.SubmitRoast("u1", "another one", "u2")
		require.NoError(t, err)
		got, err := r.GetRoom(room.Code)
		require.NoError(t, err)
		assert.Equal(t, 20, got.FindParticipant("u1").Score)
	})

	t.Run("not in a room", func(t *testing.T) {
		_, err := r.SubmitRoast("ghost", "hello", "")
		assert.ErrorIs(t, err, domain.ErrNotInRoom)
	})

	t.Run("waiting room", func(t *testing.T) {
		_, err := r.CreateRoom("u5", "Eve")
		require.NoError(t, err)
		_, err = r.SubmitRoast("u5", "too early", "")
		assert.ErrorIs(t, err, domain.ErrRoomNotActive)
	})
}

func TestLeaderboardOrderAndRanks(t *testing.T) {
	r := newTestRegistry()
	room, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)
	_, err = r.JoinRoom(room.Code, "u2", "Bob")
	require.NoError(t, err)
	_, err = r.JoinRoom(room.Code, "u3", "Carol")
	require.NoError(t, err)
	for _, u := range []string{"u1", "u2", "u3"} {
		_, err = r.SetReady(u, true)
		require.NoError(t, err)
	}
	_, err = r.StartGame(room.Code)
	require.NoError(t, err)

	// u2 scores twice, u1 and u3 once each (stub judge: 10 points per roast).
	for _, u := range []string{"u2", "u1", "u2", "u3"} {
		_, err = r.SubmitRoast(u, "get wrecked", "")
		require.NoError(t, err)
	}

	lb, err := r.Leaderboard(room.Code)
	require.NoError(t, err)
	require.Len(t, lb, 3)

	assert.Equal(t, []string{"Bob", "Alice", "Carol"}, []string{
		lb[0].DisplayName, lb[1].DisplayName, lb[2].DisplayName,
	}, "ties broken by join order")
	assert.Equal(t, []int{1, 2, 3}, []int{lb[0].Rank, lb[1].Rank, lb[2].Rank})
	assert.Equal(t, []int{20, 10, 10}, []int{lb[0].Score, lb[1].Score, lb[2].Score})
}

func TestLeaderboardUnknownRoom(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Leaderboard("ABCDEF")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestSweepExpired(t *testing.T) {
	r := newTestRegistry()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.SetClock(func() time.Time { return t0 })

	old, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)

	r.SetClock(func() time.Time { return t0.Add(90 * time.Minute) })
	fresh, err := r.CreateRoom("u2", "Bob")
	require.NoError(t, err)

	evicted := r.SweepExpired(t0.Add(3*time.Hour), 2*time.Hour)
	assert.Equal(t, 1, evicted)

	_, err = r.GetRoom(old.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	_, err = r.GetRoomByUser("u1")
	assert.ErrorIs(t, err, domain.ErrNotInRoom, "evicted members must be unindexed")

	got, err := r.GetRoom(fresh.Code)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Participants[0].DisplayName)
}

func TestNormalizeCode(t *testing.T) {
	code, err := NormalizeCode(" ab12cd ")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", code)

	for _, bad := range []string{"", "ABC", "ABCDEFG", "AB!2CD"} {
		_, err := NormalizeCode(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidCode, "code %q", bad)
	}
}

func TestReturnedRoomsAreCopies(t *testing.T) {
	r := newTestRegistry()
	room, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)

	room.Participants[0].Score = 999
	room.Status = domain.StatusFinished

	got, err := r.GetRoom(room.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Participants[0].Score)
	assert.Equal(t, domain.StatusWaiting, got.Status)
}

// --- helpers ---

func userN(i int) string {
	return "user-" + string(rune('A'+i/26)) + string(rune('A'+i%26))
}

// startedRoom creates an active two-player room (u1/Alice, u2/Bob).
func startedRoom(t *testing.T, r *Registry) *domain.Room {
	t.Helper()
	room, err := r.CreateRoom("u1", "Alice")
	require.NoError(t, err)
	_, err = r.JoinRoom(room.Code, "u2", "Bob")
	require.NoError(t, err)
	_, err = r.SetReady("u1", true)
	require.NoError(t, err)
	_, err = r.SetReady("u2", true)
	require.NoError(t, err)
	started, err := r.StartGame(room.Code)
	require.NoError(t, err)
	return started
}
