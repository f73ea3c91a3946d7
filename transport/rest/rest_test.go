package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

type roomManagerMock struct{ mock.Mock }

func (m *roomManagerMock) CreateRoom(ctx context.Context, userID, stakeItemID string) (*entity.Room, error) {
	args := m.Called(ctx, userID, stakeItemID)
	return roomArg(args, 0), args.Error(1)
}

func (m *roomManagerMock) JoinRoom(ctx context.Context, roomID, userID, stakeItemID string) (*entity.Room, error) {
	args := m.Called(ctx, roomID, userID, stakeItemID)
	return roomArg(args, 0), args.Error(1)
}

func (m *roomManagerMock) JoinRoomByCode(ctx context.Context, code, userID, stakeItemID string) (*entity.Room, error) {
	args := m.Called(ctx, code, userID, stakeItemID)
	return roomArg(args, 0), args.Error(1)
}

func (m *roomManagerMock) MakeMove(ctx context.Context, roomID, userID string, cell int) (*entity.Room, error) {
	args := m.Called(ctx, roomID, userID, cell)
	return roomArg(args, 0), args.Error(1)
}

func (m *roomManagerMock) LeaveRoom(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *roomManagerMock) SpectateRoom(ctx context.Context, roomID, userID string) (*entity.Room, error) {
	args := m.Called(ctx, roomID, userID)
	return roomArg(args, 0), args.Error(1)
}

func (m *roomManagerMock) CurrentRoom(ctx context.Context, userID string) (*entity.Room, error) {
	args := m.Called(ctx, userID)
	return roomArg(args, 0), args.Error(1)
}

func (m *roomManagerMock) AvailableRooms(ctx context.Context) ([]*entity.Room, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]*entity.Room)
	return rooms, args.Error(1)
}

func roomArg(args mock.Arguments, i int) *entity.Room {
	room, _ := args.Get(i).(*entity.Room)
	return room
}

type userUseCaseMock struct{ mock.Mock }

func (m *userUseCaseMock) Register(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

// fakeAuth accepts tokens of the form "token-<userID>".
type fakeAuth struct{}

func (fakeAuth) GenerateToken(userID string) (string, error) {
	return "token-" + userID, nil
}

func (fakeAuth) ParseToken(token string) (string, error) {
	userID, ok := strings.CutPrefix(token, "token-")
	if !ok || userID == "" {
		return "", apperror.ErrInvalidToken
	}
	return userID, nil
}

type inventoryMock struct{ mock.Mock }

func (m *inventoryMock) ListItems(ctx context.Context, userID string) ([]entity.InventoryItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]entity.InventoryItem)
	return items, args.Error(1)
}

func (m *inventoryMock) AddItem(ctx context.Context, userID string, item entity.InventoryItem, quantity int) (bool, error) {
	args := m.Called(ctx, userID, item, quantity)
	return args.Bool(0), args.Error(1)
}

type matchHistoryMock struct{ mock.Mock }

func (m *matchHistoryMock) ListByRoom(ctx context.Context, roomID string) ([]entity.MatchRecord, error) {
	args := m.Called(ctx, roomID)
	records, _ := args.Get(0).([]entity.MatchRecord)
	return records, args.Error(1)
}

type hubStub struct{ served []string }

func (that *hubStub) Serve(_ context.Context, w http.ResponseWriter, _ *http.Request, userID string) {
	that.served = append(that.served, userID)
	w.WriteHeader(http.StatusTeapot)
}

type metricsStub struct{ routes []string }

func (that *metricsStub) ObserveRequest(method, route, status string, _ time.Duration) {
	that.routes = append(that.routes, method+" "+route+" "+status)
}

func (that *metricsStub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "svoikit_active_rooms 0\n")
	})
}

type env struct {
	rooms     *roomManagerMock
	users     *userUseCaseMock
	inventory *inventoryMock
	matches   *matchHistoryMock
	hub       *hubStub
	metrics   *metricsStub
	router    *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		rooms:     &roomManagerMock{},
		users:     &userUseCaseMock{},
		inventory: &inventoryMock{},
		matches:   &matchHistoryMock{},
		hub:       &hubStub{},
		metrics:   &metricsStub{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.router = New(logger, e.rooms, e.users, fakeAuth{}, e.inventory, e.matches, e.hub, e.metrics).Router()

	t.Cleanup(func() {
		e.rooms.AssertExpectations(t)
		e.users.AssertExpectations(t)
		e.inventory.AssertExpectations(t)
		e.matches.AssertExpectations(t)
	})

	return e
}

func (that *env) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("Authorization", "Bearer token-"+userID)
	}

	rec := httptest.NewRecorder()
	that.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestPublicRoutes(t *testing.T) {
	t.Run("Ping answers pong", func(t *testing.T) {
		e := newEnv(t)

		rec := e.do(http.MethodGet, "/ping", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
		assert.Equal(t, []string{"GET /ping 200"}, e.metrics.routes)
	})

	t.Run("Metrics are exposed without a token", func(t *testing.T) {
		e := newEnv(t)

		rec := e.do(http.MethodGet, "/metrics", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "svoikit_active_rooms")
	})

	t.Run("Unknown route is observed as unmatched", func(t *testing.T) {
		e := newEnv(t)

		rec := e.do(http.MethodGet, "/nowhere", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, []string{"GET unmatched 404"}, e.metrics.routes)
	})
}

func TestRegister(t *testing.T) {
	t.Run("Returns the user and a token", func(t *testing.T) {
		// Given: registration succeeds
		e := newEnv(t)
		user := &entity.User{ID: "u1", Username: "alice", Role: entity.RoleUser}
		e.users.On("Register", mock.Anything, "alice").Return(user, nil).Once()

		// When: posting a username
		rec := e.do(http.MethodPost, "/users", "", map[string]string{"username": "alice"})

		// Then: 201 with a token for that user
		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decode[registerResponse](t, rec)
		assert.Equal(t, "u1", resp.User.ID)
		assert.Equal(t, "token-u1", resp.Token)
	})

	t.Run("Missing username is a bad request", func(t *testing.T) {
		e := newEnv(t)

		rec := e.do(http.MethodPost, "/users", "", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Blank username from the use case is a bad request", func(t *testing.T) {
		e := newEnv(t)
		e.users.On("Register", mock.Anything, "   ").Return(nil, apperror.ErrInvalidUsername).Once()

		rec := e.do(http.MethodPost, "/users", "", map[string]string{"username": "   "})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperror.ErrInvalidUsername.Error(), decode[errorResponse](t, rec).Error)
	})
}

func TestAuthentication(t *testing.T) {
	t.Run("Missing token is rejected", func(t *testing.T) {
		e := newEnv(t)

		rec := e.do(http.MethodGet, "/rooms", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Invalid token is rejected", func(t *testing.T) {
		e := newEnv(t)
		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		e.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Token from the query string is accepted", func(t *testing.T) {
		// Given: a socket request carrying its token in the query
		e := newEnv(t)

		rec := e.do(http.MethodGet, "/ws?token=token-u1", "", nil)

		// Then: the hub serves the authenticated user
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, []string{"u1"}, e.hub.served)
	})
}

func TestInventory(t *testing.T) {
	t.Run("Lists the caller's items", func(t *testing.T) {
		e := newEnv(t)
		items := []entity.InventoryItem{{ID: "sword", Name: "Sword", Quantity: 2}}
		e.inventory.On("ListItems", mock.Anything, "u1").Return(items, nil).Once()

		rec := e.do(http.MethodGet, "/inventory", "u1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, items, decode[[]entity.InventoryItem](t, rec))
	})

	t.Run("Grants an item to the caller", func(t *testing.T) {
		e := newEnv(t)
		item := entity.InventoryItem{ID: "sword", Name: "Sword", Rarity: "rare"}
		e.inventory.On("AddItem", mock.Anything, "u1", item, 3).Return(true, nil).Once()

		rec := e.do(http.MethodPost, "/inventory", "u1", addItemRequest{ID: "sword", Name: "Sword", Rarity: "rare", Quantity: 3})

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Zero quantity is a bad request", func(t *testing.T) {
		e := newEnv(t)

		rec := e.do(http.MethodPost, "/inventory", "u1", addItemRequest{ID: "sword", Name: "Sword"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRooms(t *testing.T) {
	room := &entity.Room{ID: "r1", Code: "ABC234", Status: entity.StatusWaiting}

	t.Run("Create room", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("CreateRoom", mock.Anything, "u1", "sword").Return(room, nil).Once()

		rec := e.do(http.MethodPost, "/rooms", "u1", createRoomRequest{StakeItemID: "sword"})

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "ABC234", decode[entity.Room](t, rec).Code)
	})

	t.Run("Create room without a stake is a bad request", func(t *testing.T) {
		e := newEnv(t)

		rec := e.do(http.MethodPost, "/rooms", "u1", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("List available rooms", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("AvailableRooms", mock.Anything).Return([]*entity.Room{room}, nil).Once()

		rec := e.do(http.MethodGet, "/rooms", "u1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]entity.Room](t, rec), 1)
	})

	t.Run("Current room", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("CurrentRoom", mock.Anything, "u1").Return(nil, apperror.ErrNotInRoom).Once()

		rec := e.do(http.MethodGet, "/rooms/current", "u1", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Join by id", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("JoinRoom", mock.Anything, "r1", "u2", "shield").Return(room, nil).Once()

		rec := e.do(http.MethodPost, "/rooms/r1/join", "u2", joinRoomRequest{StakeItemID: "shield"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Join by code", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("JoinRoomByCode", mock.Anything, "ABC234", "u2", "shield").Return(room, nil).Once()

		rec := e.do(http.MethodPost, "/rooms/join", "u2", joinByCodeRequest{RoomCode: "ABC234", StakeItemID: "shield"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Join a full room is a conflict", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("JoinRoom", mock.Anything, "r1", "u3", "sword").Return(nil, apperror.ErrRoomFull).Once()

		rec := e.do(http.MethodPost, "/rooms/r1/join", "u3", joinRoomRequest{StakeItemID: "sword"})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apperror.ErrRoomFull.Error(), decode[errorResponse](t, rec).Error)
	})

	t.Run("Move", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("MakeMove", mock.Anything, "r1", "u1", 0).Return(room, nil).Once()

		rec := e.do(http.MethodPost, "/rooms/r1/moves", "u1", map[string]int{"cell": 0})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Move without a cell is a bad request", func(t *testing.T) {
		e := newEnv(t)

		rec := e.do(http.MethodPost, "/rooms/r1/moves", "u1", map[string]int{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Move rejections map to statuses", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
		}{
			{apperror.ErrInvalidCell, http.StatusBadRequest},
			{apperror.ErrSpectating, http.StatusForbidden},
			{apperror.ErrRoomNotFound, http.StatusNotFound},
			{apperror.ErrNotYourTurn, http.StatusConflict},
			{apperror.ErrCellOccupied, http.StatusConflict},
			{fmt.Errorf("failed to save room: %w", apperror.ErrGameFinished), http.StatusConflict},
		}

		for _, tc := range cases {
			e := newEnv(t)
			e.rooms.On("MakeMove", mock.Anything, "r1", "u1", 4).Return(nil, tc.err).Once()

			rec := e.do(http.MethodPost, "/rooms/r1/moves", "u1", map[string]int{"cell": 4})

			assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		}
	})

	t.Run("Unexpected errors are hidden", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("MakeMove", mock.Anything, "r1", "u1", 4).Return(nil, fmt.Errorf("redis is down")).Once()

		rec := e.do(http.MethodPost, "/rooms/r1/moves", "u1", map[string]int{"cell": 4})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", decode[errorResponse](t, rec).Error)
	})

	t.Run("Spectate requires admin", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("SpectateRoom", mock.Anything, "r1", "u1").Return(nil, apperror.ErrNotAdmin).Once()

		rec := e.do(http.MethodPost, "/rooms/r1/spectate", "u1", nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Match history of a room", func(t *testing.T) {
		// Given: one finished game in r1
		e := newEnv(t)
		records := []entity.MatchRecord{{RoomID: "r1", RoomCode: "ABC234", Winner: "alice"}}
		e.matches.On("ListByRoom", mock.Anything, "r1").Return(records, nil).Once()

		// When: listing its matches
		rec := e.do(http.MethodGet, "/rooms/r1/matches", "u1", nil)

		// Then: the archived result is returned
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]entity.MatchRecord](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, "alice", got[0].Winner)
	})

	t.Run("Leave", func(t *testing.T) {
		e := newEnv(t)
		e.rooms.On("LeaveRoom", mock.Anything, "u1").Return(nil).Once()

		rec := e.do(http.MethodPost, "/rooms/leave", "u1", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestServer_Start(t *testing.T) {
	// Given: a server on a free port
	e := newEnv(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(logger, e.rooms, e.users, fakeAuth{}, e.inventory, e.matches, e.hub, e.metrics)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx, "0")
	}()

	// When: the context is cancelled
	time.Sleep(50 * time.Millisecond)
	cancel()

	// Then: Start returns without error
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
