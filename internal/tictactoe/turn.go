package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

// MakeTurn places the player's symbol, settles the outcome and passes the turn.
func MakeTurn(room *entity.Room, player *entity.Player, cell int) error {
	if err := validateMove(room, player, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	room.Board[cell] = player.Symbol
	updateRoomStatus(room, player)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(room *entity.Room, player *entity.Player, cell int) error {
	if cell < 0 || cell >= len(room.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	switch {
	case room.IsFinished():
		return apperror.ErrGameFinished
	case !room.IsPlaying():
		return apperror.ErrGameIsNotStarted
	}

	if room.CurrentTurn != player.ID {
		return apperror.ErrNotYourTurn
	}

	if room.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateRoomStatus - checks the board after a move.
func updateRoomStatus(room *entity.Room, player *entity.Player) {
	if winner := CalculateWinner(room.Board); winner != entity.EmptyCell {
		room.Status = entity.StatusFinished
		room.Winner = player.Username
	} else if IsBoardFull(room.Board) {
		room.Status = entity.StatusFinished
		room.Winner = ""
	}

	if opponent := room.Opponent(player.ID); opponent != nil {
		room.CurrentTurn = opponent.ID
	}
}
