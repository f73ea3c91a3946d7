package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom() *Room {
	creator := &Player{ID: "p1", UserID: "u1", Username: "alice"}
	return NewRoom("r1", "ABC234", creator, InventoryItem{ID: "sword", Name: "Sword", Quantity: 1}, time.Unix(100, 0))
}

func TestNewRoom(t *testing.T) {
	// When: a room is created
	room := newTestRoom()

	// Then: the creator holds X, the first turn and an escrowed stake
	require.Len(t, room.Players, 1)
	assert.Equal(t, PlayerX, room.Players[0].Symbol)
	assert.Equal(t, "sword", room.Players[0].StakeItemID)
	assert.Equal(t, "p1", room.CurrentTurn)
	assert.Equal(t, "u1", room.CreatorID)
	assert.Equal(t, StatusWaiting, room.Status)
	assert.Equal(t, map[string]string{"p1": "sword"}, room.Stakes)
	assert.True(t, room.BotCheckScheduled)
	assert.Equal(t, [9]string{}, room.Board)
}

func TestRoom_StatusMethods(t *testing.T) {
	t.Run("IsWaiting returns true when status is waiting", func(t *testing.T) {
		room := &Room{Status: StatusWaiting}
		assert.True(t, room.IsWaiting())
		assert.False(t, room.IsPlaying())
	})

	t.Run("IsPlaying returns true when status is playing", func(t *testing.T) {
		room := &Room{Status: StatusPlaying}
		assert.True(t, room.IsPlaying())
		assert.False(t, room.IsFinished())
	})

	t.Run("IsDraw only for a finished room without a winner", func(t *testing.T) {
		assert.True(t, (&Room{Status: StatusFinished}).IsDraw())
		assert.False(t, (&Room{Status: StatusFinished, Winner: "alice"}).IsDraw())
		assert.False(t, (&Room{Status: StatusPlaying}).IsDraw())
	})
}

func TestRoom_AddRemovePlayer(t *testing.T) {
	t.Run("AddPlayer escrows the stake", func(t *testing.T) {
		// Given: a room with its creator
		room := newTestRoom()

		// When: a second player joins
		room.AddPlayer(&Player{ID: "p2", UserID: "u2", Symbol: PlayerO}, InventoryItem{ID: "shield", Quantity: 1})

		// Then: both stakes are in escrow
		assert.True(t, room.IsFull())
		assert.Equal(t, "shield", room.Stakes["p2"])
		assert.Equal(t, "shield", room.Escrow["p2"].ID)
		assert.Equal(t, "shield", room.PlayerByUserID("u2").StakeItemID)
	})

	t.Run("RemovePlayer drops seat and escrow", func(t *testing.T) {
		// Given: a full room
		room := newTestRoom()
		room.AddPlayer(&Player{ID: "p2", UserID: "u2", Symbol: PlayerO}, InventoryItem{ID: "shield", Quantity: 1})

		// When: the creator is removed
		removed := room.RemovePlayer("p1")

		// Then: only the second player is left
		require.NotNil(t, removed)
		assert.Equal(t, "u1", removed.UserID)
		require.Len(t, room.Players, 1)
		assert.NotContains(t, room.Stakes, "p1")
		assert.NotContains(t, room.Escrow, "p1")
	})

	t.Run("RemovePlayer returns nil for an unknown seat", func(t *testing.T) {
		room := newTestRoom()
		assert.Nil(t, room.RemovePlayer("nobody"))
		assert.Len(t, room.Players, 1)
	})
}

func TestRoom_Lookups(t *testing.T) {
	// Given: a room with a human and a bot
	room := newTestRoom()
	room.AddPlayer(NewBotPlayer("bot", "Bot", "bot-stake"), InventoryItem{ID: "bot-stake"})
	room.Status = StatusPlaying

	// Then: lookups resolve the right seats
	assert.Equal(t, "bot", room.Bot().ID)
	assert.True(t, room.HasBot())
	assert.Equal(t, 1, room.HumanCount())
	assert.Equal(t, "bot", room.Opponent("p1").ID)
	assert.Equal(t, "p1", room.PlayerBySymbol(PlayerX).ID)
	assert.Nil(t, room.PlayerByUserID(""))

	// When: it is the bot's turn
	room.CurrentTurn = "bot"

	// Then: the room waits for its bot
	assert.True(t, room.IsBotTurn())

	room.Status = StatusFinished
	assert.False(t, room.IsBotTurn())
}

func TestRoom_Clone(t *testing.T) {
	// Given: a room
	room := newTestRoom()

	// When: the clone is mutated
	clone := room.Clone()
	clone.Players[0].Username = "mallory"
	clone.Stakes["p1"] = "other"
	clone.Board[0] = PlayerX

	// Then: the original is untouched
	assert.Equal(t, "alice", room.Players[0].Username)
	assert.Equal(t, "sword", room.Stakes["p1"])
	assert.Equal(t, EmptyCell, room.Board[0])
}
