package domain

import "time"

// RoastEvent is one scored roast in a room's in-memory log.
type RoastEvent struct {
	Author    string
	Text      string
	Score     int
	Timestamp time.Time
}

// Submission is the result of a single submitRoast call.
type Submission struct {
	PlayerID  string
	TargetID  string
	Text      string
	Score     int
	Timestamp time.Time
}

type LeaderboardEntry struct {
	UserID      string
	DisplayName string
	Score       int
	Rank        int
}
