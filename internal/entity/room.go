package entity

import (
	"time"
)

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

const MaxPlayers = 2

type Room struct {
	ID          string                   `json:"id"`
	Code        string                   `json:"room_code"`
	CreatorID   string                   `json:"creator_id"`
	Players     []*Player                `json:"players"`
	CurrentTurn string                   `json:"current_turn"`
	Status      string                   `json:"status"`
	Winner      string                   `json:"winner,omitempty"`
	Board       [9]string                `json:"board"`
	Stakes      map[string]string        `json:"stakes"`
	Escrow      map[string]InventoryItem `json:"escrow,omitempty"`

	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`

	BotCheckScheduled bool `json:"bot_check_scheduled"`
}

func NewRoom(id, code string, creator *Player, stake InventoryItem, now time.Time) *Room {
	creator.Symbol = PlayerX
	creator.StakeItemID = stake.ID

	return &Room{
		ID:          id,
		Code:        code,
		CreatorID:   creator.UserID,
		Players:     []*Player{creator},
		CurrentTurn: creator.ID,
		Status:      StatusWaiting,
		Board:       [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Stakes:      map[string]string{creator.ID: stake.ID},
		Escrow:      map[string]InventoryItem{creator.ID: stake},

		CreatedAt:    now,
		LastActivity: now,

		BotCheckScheduled: true,
	}
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

// IsDraw reports a finished room without a winner.
func (that *Room) IsDraw() bool {
	return that.IsFinished() && that.Winner == ""
}

// AddPlayer seats a player and escrows the stake item.
func (that *Room) AddPlayer(player *Player, stake InventoryItem) {
	player.StakeItemID = stake.ID

	that.Players = append(that.Players, player)
	that.Stakes[player.ID] = stake.ID
	that.Escrow[player.ID] = stake
}

// RemovePlayer drops the seat and its escrow entry. Returns the removed player or nil.
func (that *Room) RemovePlayer(playerID string) *Player {
	for i, player := range that.Players {
		if player.ID != playerID {
			continue
		}

		that.Players = append(that.Players[:i], that.Players[i+1:]...)
		delete(that.Stakes, playerID)
		delete(that.Escrow, playerID)

		return player
	}

	return nil
}

func (that *Room) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

func (that *Room) PlayerByUserID(userID string) *Player {
	for _, player := range that.Players {
		if !player.IsBot && player.UserID == userID {
			return player
		}
	}
	return nil
}

func (that *Room) PlayerBySymbol(symbol string) *Player {
	for _, player := range that.Players {
		if player.Symbol == symbol {
			return player
		}
	}
	return nil
}

// Opponent returns the other seated player, or nil when playerID sits alone.
func (that *Room) Opponent(playerID string) *Player {
	for _, player := range that.Players {
		if player.ID != playerID {
			return player
		}
	}
	return nil
}

func (that *Room) Bot() *Player {
	for _, player := range that.Players {
		if player.IsBot {
			return player
		}
	}
	return nil
}

func (that *Room) HasBot() bool {
	return that.Bot() != nil
}

func (that *Room) HumanCount() int {
	count := 0
	for _, player := range that.Players {
		if !player.IsBot {
			count++
		}
	}
	return count
}

// IsBotTurn reports whether a playing room waits for its bot.
func (that *Room) IsBotTurn() bool {
	if !that.IsPlaying() {
		return false
	}

	player := that.PlayerByID(that.CurrentTurn)
	return player != nil && player.IsBot
}

// ResetBoard clears the board and hands the turn to the given player.
func (that *Room) ResetBoard(turn string) {
	that.Board = [9]string{}
	that.CurrentTurn = turn
	that.Winner = ""
}

// Clone returns a deep copy safe to hand out of the manager.
func (that *Room) Clone() *Room {
	clone := *that

	clone.Players = make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		p := *player
		clone.Players = append(clone.Players, &p)
	}

	clone.Stakes = make(map[string]string, len(that.Stakes))
	for playerID, itemID := range that.Stakes {
		clone.Stakes[playerID] = itemID
	}

	clone.Escrow = make(map[string]InventoryItem, len(that.Escrow))
	for playerID, item := range that.Escrow {
		clone.Escrow[playerID] = item
	}

	return &clone
}
