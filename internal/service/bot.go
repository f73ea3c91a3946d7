package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
	"github.com/rocketscienceinc/svoikit-backend/internal/tictactoe"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

const centerCell = 4

var (
	cornerCells = [4]int{0, 2, 6, 8}
	sideCells   = [4]int{1, 3, 5, 7}
)

type BotService interface {
	FindBestMove(board [9]string, botSymbol, opponentSymbol string) (int, bool)
	MakeTurn(room *entity.Room) (int, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// FindBestMove picks the bot's cell: win, block, center, corner, side, then any empty cell.
// Returns false when the board is full.
func (that *botService) FindBestMove(board [9]string, botSymbol, opponentSymbol string) (int, bool) {
	if cell, ok := completingMove(board, botSymbol); ok {
		return cell, true
	}

	if cell, ok := completingMove(board, opponentSymbol); ok {
		return cell, true
	}

	if board[centerCell] == entity.EmptyCell {
		return centerCell, true
	}

	for _, cell := range cornerCells {
		if board[cell] == entity.EmptyCell {
			return cell, true
		}
	}

	for _, cell := range sideCells {
		if board[cell] == entity.EmptyCell {
			return cell, true
		}
	}

	empty := tictactoe.EmptyCells(board)
	if len(empty) == 0 {
		return 0, false
	}

	return empty[0], true
}

// MakeTurn plays the bot's move in a room where it is the bot's turn and returns the chosen cell.
func (that *botService) MakeTurn(room *entity.Room) (int, error) {
	bot := room.Bot()
	if bot == nil {
		return 0, ErrBotNotFound
	}

	opponentSymbol := entity.PlayerX
	if opponent := room.Opponent(bot.ID); opponent != nil {
		opponentSymbol = opponent.Symbol
	}

	cell, ok := that.FindBestMove(room.Board, bot.Symbol, opponentSymbol)
	if !ok {
		return 0, ErrNoAvailableMoves
	}

	if err := tictactoe.MakeTurn(room, bot, cell); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

// completingMove returns the lowest empty cell that completes a line for symbol.
func completingMove(board [9]string, symbol string) (int, bool) {
	for _, cell := range tictactoe.EmptyCells(board) {
		board[cell] = symbol
		won := tictactoe.CalculateWinner(board) == symbol
		board[cell] = entity.EmptyCell

		if won {
			return cell, true
		}
	}

	return 0, false
}
