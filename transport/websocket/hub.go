package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

var errUnknownAction = errors.New("unknown action")

type roomService interface {
	CurrentRoom(ctx context.Context, userID string) (*entity.Room, error)
	MakeMove(ctx context.Context, roomID, userID string, cell int) (*entity.Room, error)
	LeaveRoom(ctx context.Context, userID string) error
}

type clientMetrics interface {
	ClientConnected()
	ClientDisconnected()
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	roomID string
	userID string
}

// Hub pushes room snapshots to the sockets attached to each room and accepts moves from them.
type Hub struct {
	logger   *slog.Logger
	rooms    roomService
	metrics  clientMetrics
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}

	handlers map[string]func(ctx context.Context, c *client, payload *Payload) error
}

func NewHub(logger *slog.Logger, rooms roomService, metrics clientMetrics) *Hub {
	hub := &Hub{
		logger:  logger.With("component", "websocket"),
		rooms:   rooms,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		clients: make(map[string]map[*client]struct{}),
	}

	hub.handlers = map[string]func(context.Context, *client, *Payload) error{
		ActionMove:  hub.handleMove,
		ActionLeave: hub.handleLeave,
	}

	return hub
}

// Serve upgrades the request and attaches the socket to the user's current room.
func (that *Hub) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, userID string) {
	log := that.logger.With("method", "Serve", "userID", userID)

	room, err := that.rooms.CurrentRoom(ctx, userID)
	if errors.Is(err, apperror.ErrNotInRoom) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to get current room", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		roomID: room.ID,
		userID: userID,
	}

	that.register(c)
	defer that.unregister(c)

	that.reply(c, ActionRoomUpdate, Payload{Room: room})

	go that.writePump(c)
	that.readPump(ctx, c)
}

// RoomUpdated broadcasts a room snapshot.
func (that *Hub) RoomUpdated(room *entity.Room) {
	that.broadcast(room.ID, ActionRoomUpdate, Payload{Room: room})
}

// RoomClosed tells the attached sockets that the room is gone and disconnects them.
func (that *Hub) RoomClosed(roomID string) {
	that.broadcast(roomID, ActionRoomClosed, Payload{RoomID: roomID})
	that.detachRoom(roomID)
}

// Clients returns the number of sockets attached to a room.
func (that *Hub) Clients(roomID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients[roomID])
}

// Close disconnects every socket.
func (that *Hub) Close() {
	that.mu.RLock()
	var all []*client
	for _, clients := range that.clients {
		for c := range clients {
			all = append(all, c)
		}
	}
	that.mu.RUnlock()

	for _, c := range all {
		that.unregister(c)
	}
}

func (that *Hub) attached(c *client) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.clients[c.roomID][c]
	return ok
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clients[c.roomID]; !ok {
		that.clients[c.roomID] = make(map[*client]struct{})
	}
	that.clients[c.roomID][c] = struct{}{}

	that.metrics.ClientConnected()
}

// unregister closes the send channel exactly once, when the client leaves the map.
func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	clients, ok := that.clients[c.roomID]
	if !ok {
		return
	}
	if _, ok = clients[c]; !ok {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(that.clients, c.roomID)
	}
	close(c.send)

	that.metrics.ClientDisconnected()
}

// detachRoom unregisters every client of a room. Queued messages are still written before the
// close frame.
func (that *Hub) detachRoom(roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.clients[roomID] {
		close(c.send)
		that.metrics.ClientDisconnected()
	}
	delete(that.clients, roomID)
}

func (that *Hub) broadcast(roomID, action string, payload Payload) {
	message, err := encode(action, payload)
	if err != nil {
		that.logger.Error("failed to encode broadcast", "roomID", roomID, "error", err)
		return
	}

	var slow []*client

	that.mu.RLock()
	for c := range that.clients[roomID] {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	that.mu.RUnlock()

	for _, c := range slow {
		that.logger.Warn("dropping slow client", "roomID", roomID, "userID", c.userID)
		that.unregister(c)
	}
}

func (that *Hub) reply(c *client, action string, payload Payload) {
	message, err := encode(action, payload)
	if err != nil {
		that.logger.Error("failed to encode reply", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	if _, ok := that.clients[c.roomID][c]; !ok {
		return
	}

	select {
	case c.send <- message:
	default:
	}
}

func (that *Hub) readPump(ctx context.Context, c *client) {
	log := that.logger.With("method", "readPump", "userID", c.userID)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var payload Payload
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, &payload); err != nil {
				that.reply(c, ActionError, Payload{Error: "invalid payload"})
				continue
			}
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.reply(c, ActionError, Payload{Error: fmt.Sprintf("%s: %s", errUnknownAction, message.Action)})
			continue
		}

		if err := handler(ctx, c, &payload); err != nil {
			log.Debug("action rejected", "action", message.Action, "error", err)
			that.reply(c, ActionError, Payload{Error: err.Error()})
		}

		if !that.attached(c) {
			return
		}
	}
}

func (that *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (that *Hub) handleMove(ctx context.Context, c *client, payload *Payload) error {
	if payload.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell)
	}

	if _, err := that.rooms.MakeMove(ctx, c.roomID, c.userID, *payload.Cell); err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	return nil
}

func (that *Hub) handleLeave(ctx context.Context, c *client, _ *Payload) error {
	if err := that.rooms.LeaveRoom(ctx, c.userID); err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	that.reply(c, ActionRoomClosed, Payload{RoomID: c.roomID})
	that.unregister(c)

	return nil
}
