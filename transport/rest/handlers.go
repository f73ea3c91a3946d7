package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

func (that *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	user, err := that.users.Register(c.Request.Context(), req.Username)
	if err != nil {
		that.fail(c, "register", err)
		return
	}

	token, err := that.auth.GenerateToken(user.ID)
	if err != nil {
		that.fail(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{User: user, Token: token})
}

func (that *Server) listInventory(c *gin.Context) {
	items, err := that.inventory.ListItems(c.Request.Context(), userID(c))
	if err != nil {
		that.fail(c, "listInventory", err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (that *Server) addInventory(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	item := entity.InventoryItem{ID: req.ID, Name: req.Name, Rarity: req.Rarity}
	if _, err := that.inventory.AddItem(c.Request.Context(), userID(c), item, req.Quantity); err != nil {
		that.fail(c, "addInventory", err)
		return
	}

	c.Status(http.StatusCreated)
}

func (that *Server) availableRooms(c *gin.Context) {
	rooms, err := that.rooms.AvailableRooms(c.Request.Context())
	if err != nil {
		that.fail(c, "availableRooms", err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

func (that *Server) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	room, err := that.rooms.CreateRoom(c.Request.Context(), userID(c), req.StakeItemID)
	if err != nil {
		that.fail(c, "createRoom", err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (that *Server) currentRoom(c *gin.Context) {
	room, err := that.rooms.CurrentRoom(c.Request.Context(), userID(c))
	if err != nil {
		that.fail(c, "currentRoom", err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (that *Server) joinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	room, err := that.rooms.JoinRoom(c.Request.Context(), c.Param("id"), userID(c), req.StakeItemID)
	if err != nil {
		that.fail(c, "joinRoom", err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (that *Server) joinRoomByCode(c *gin.Context) {
	var req joinByCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	room, err := that.rooms.JoinRoomByCode(c.Request.Context(), req.RoomCode, userID(c), req.StakeItemID)
	if err != nil {
		that.fail(c, "joinRoomByCode", err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (that *Server) makeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	room, err := that.rooms.MakeMove(c.Request.Context(), c.Param("id"), userID(c), *req.Cell)
	if err != nil {
		that.fail(c, "makeMove", err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (that *Server) spectateRoom(c *gin.Context) {
	room, err := that.rooms.SpectateRoom(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		that.fail(c, "spectateRoom", err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (that *Server) roomMatches(c *gin.Context) {
	records, err := that.matches.ListByRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "roomMatches", err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (that *Server) leaveRoom(c *gin.Context) {
	if err := that.rooms.LeaveRoom(c.Request.Context(), userID(c)); err != nil {
		that.fail(c, "leaveRoom", err)
		return
	}

	c.Status(http.StatusNoContent)
}
