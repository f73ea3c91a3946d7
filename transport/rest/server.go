package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type roomManager interface {
	CreateRoom(ctx context.Context, userID, stakeItemID string) (*entity.Room, error)
	JoinRoom(ctx context.Context, roomID, userID, stakeItemID string) (*entity.Room, error)
	JoinRoomByCode(ctx context.Context, code, userID, stakeItemID string) (*entity.Room, error)
	MakeMove(ctx context.Context, roomID, userID string, cell int) (*entity.Room, error)
	LeaveRoom(ctx context.Context, userID string) error
	SpectateRoom(ctx context.Context, roomID, userID string) (*entity.Room, error)
	CurrentRoom(ctx context.Context, userID string) (*entity.Room, error)
	AvailableRooms(ctx context.Context) ([]*entity.Room, error)
}

type userUseCase interface {
	Register(ctx context.Context, username string) (*entity.User, error)
}

type authService interface {
	GenerateToken(userID string) (string, error)
	ParseToken(token string) (string, error)
}

type inventoryRepo interface {
	ListItems(ctx context.Context, userID string) ([]entity.InventoryItem, error)
	AddItem(ctx context.Context, userID string, item entity.InventoryItem, quantity int) (bool, error)
}

type matchHistory interface {
	ListByRoom(ctx context.Context, roomID string) ([]entity.MatchRecord, error)
}

type socketHub interface {
	Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, userID string)
}

type requestMetrics interface {
	ObserveRequest(method, route, status string, elapsed time.Duration)
	Handler() http.Handler
}

type Server struct {
	logger *slog.Logger

	rooms     roomManager
	users     userUseCase
	auth      authService
	inventory inventoryRepo
	matches   matchHistory
	hub       socketHub
	metrics   requestMetrics
}

func New(
	logger *slog.Logger,
	rooms roomManager,
	users userUseCase,
	auth authService,
	inventory inventoryRepo,
	matches matchHistory,
	hub socketHub,
	metrics requestMetrics,
) *Server {
	return &Server{
		logger: logger.With("component", "rest"),

		rooms:     rooms,
		users:     users,
		auth:      auth,
		inventory: inventory,
		matches:   matches,
		hub:       hub,
		metrics:   metrics,
	}
}

// Router builds the gin engine with every route.
func (that *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), that.observe())

	router.GET("/ping", that.ping)
	router.GET("/metrics", gin.WrapH(that.metrics.Handler()))
	router.POST("/users", that.register)

	authorized := router.Group("/", that.authenticate())

	authorized.GET("/ws", that.serveSocket)

	authorized.GET("/inventory", that.listInventory)
	authorized.POST("/inventory", that.addInventory)

	authorized.GET("/rooms", that.availableRooms)
	authorized.POST("/rooms", that.createRoom)
	authorized.GET("/rooms/current", that.currentRoom)
	authorized.POST("/rooms/join", that.joinRoomByCode)
	authorized.POST("/rooms/leave", that.leaveRoom)
	authorized.POST("/rooms/:id/join", that.joinRoom)
	authorized.POST("/rooms/:id/moves", that.makeMove)
	authorized.POST("/rooms/:id/spectate", that.spectateRoom)
	authorized.GET("/rooms/:id/matches", that.roomMatches)

	return router
}

// Start serves HTTP until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func (that *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *Server) serveSocket(c *gin.Context) {
	that.hub.Serve(c.Request.Context(), c.Writer, c.Request, userID(c))
}
