package entity

type Player struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Username    string `json:"username"`
	Symbol      string `json:"symbol"`
	StakeItemID string `json:"stake_item_id"`
	IsBot       bool   `json:"is_bot,omitempty"`
}

func NewBotPlayer(id, name, stakeItemID string) *Player {
	return &Player{
		ID:          id,
		Username:    name,
		Symbol:      PlayerO,
		StakeItemID: stakeItemID,
		IsBot:       true,
	}
}
