package domain

import (
	"strings"
	"time"
)

type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusActive   RoomStatus = "active"
	StatusFinished RoomStatus = "finished"
)

// Room is one roast-battle session. Participants keep join order.
type Room struct {
	Code         string
	Status       RoomStatus
	Round        int
	MaxRounds    int
	CreatedAt    time.Time
	Participants []*Participant
	Roasts       []RoastEvent
}

func (r *Room) FindParticipant(userID string) *Participant {
	for _, p := range r.Participants {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// HasDisplayName reports a case-insensitive name collision.
func (r *Room) HasDisplayName(name string) bool {
	for _, p := range r.Participants {
		if strings.EqualFold(p.DisplayName, name) {
			return true
		}
	}
	return false
}

// CanStart requires at least two participants, all ready.
func (r *Room) CanStart() bool {
	if len(r.Participants) < 2 {
		return false
	}
	for _, p := range r.Participants {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Clone returns a deep copy safe to hand to transports.
func (r *Room) Clone() *Room {
	cp := *r
	cp.Participants = make([]*Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		pc := *p
		pc.Roasts = append([]string(nil), p.Roasts...)
		cp.Participants = append(cp.Participants, &pc)
	}
	cp.Roasts = append([]RoastEvent(nil), r.Roasts...)
	return &cp
}
