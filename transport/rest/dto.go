package rest

import "github.com/rocketscienceinc/svoikit-backend/internal/entity"

type registerRequest struct {
	Username string `json:"username" binding:"required"`
}

type registerResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type addItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Rarity   string `json:"rarity"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type createRoomRequest struct {
	StakeItemID string `json:"stake_item_id" binding:"required"`
}

type joinRoomRequest struct {
	StakeItemID string `json:"stake_item_id" binding:"required"`
}

type joinByCodeRequest struct {
	RoomCode    string `json:"room_code" binding:"required"`
	StakeItemID string `json:"stake_item_id" binding:"required"`
}

type moveRequest struct {
	Cell *int `json:"cell" binding:"required"`
}
