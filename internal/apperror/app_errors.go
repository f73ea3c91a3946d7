package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")

	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotWaiting   = errors.New("room is not waiting for players")
	ErrRoomFull         = errors.New("room already has two players")
	ErrAlreadyInRoom    = errors.New("user is already a player in this room")
	ErrAlreadyInGame    = errors.New("user is already in a game")
	ErrNotInRoom        = errors.New("user is not in a room")
	ErrStakeUnavailable = errors.New("stake item is not available")

	ErrRoomCodeExhausted = errors.New("no free room code")

	ErrSpectating = errors.New("spectators can't make moves")
	ErrNotAdmin   = errors.New("only admins can spectate")

	ErrNotFound        = errors.New("not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidUsername = errors.New("username must not be empty")
)
