package domain

import "time"

type Participant struct {
	UserID      string
	DisplayName string
	Score       int
	Ready       bool
	Roasts      []string
	JoinedAt    time.Time
}
