package domain

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotJoinable = errors.New("room is not joinable")
	ErrRoomFull        = errors.New("room is full")
	ErrRoomNotActive   = errors.New("room is not active")
	ErrDuplicateName   = errors.New("display name already taken in this room")
	ErrAlreadyInRoom   = errors.New("user already in a room")
	ErrNotInRoom       = errors.New("user not in a room")
	ErrNotReady        = errors.New("not all players are ready")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrInvalidCode     = errors.New("invalid room code")
)
