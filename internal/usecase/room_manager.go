package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
	"github.com/rocketscienceinc/svoikit-backend/internal/service"
	"github.com/rocketscienceinc/svoikit-backend/internal/tictactoe"
)

const (
	OutcomeWin    = "win"
	OutcomeDraw   = "draw"
	OutcomeBotWin = "bot_win"
)

const maxCodeAttempts = 10

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Room, error)
}

type inventoryRepo interface {
	GetItem(ctx context.Context, userID, itemID string) (*entity.InventoryItem, error)
	RemoveItem(ctx context.Context, userID, itemID string, quantity int) (bool, error)
	AddItem(ctx context.Context, userID string, item entity.InventoryItem, quantity int) (bool, error)
}

type identityRepo interface {
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}

type timers interface {
	AddTimer(delay, interval time.Duration, callback func()) int64
	RemoveTimer(id int64)
}

// Notifier receives a snapshot after every room change.
type Notifier interface {
	RoomUpdated(room *entity.Room)
	RoomClosed(roomID string)
}

type Metrics interface {
	SetActiveRooms(n int)
	RoomCreated()
	RoomClosed()
	GameFinished(outcome string)
	BotJoined()
	BotMoved()
}

type MatchRecorder interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
}

type RoomSettings struct {
	BotJoinAfter     time.Duration
	BotCheckInterval time.Duration
	BotMoveDelay     time.Duration
	BotName          string
	BotStakeItemID   string
	BotStakeItemName string
}

type Option func(*RoomManager)

func WithNotifier(notifier Notifier) Option {
	return func(m *RoomManager) { m.notifier = notifier }
}

func WithMetrics(metrics Metrics) Option {
	return func(m *RoomManager) { m.metrics = metrics }
}

func WithMatchRecorder(recorder MatchRecorder) Option {
	return func(m *RoomManager) { m.matches = recorder }
}

func WithClock(now func() time.Time) Option {
	return func(m *RoomManager) { m.now = now }
}

// RoomManager owns every room and the user to room mapping. All mutations go through its methods
// under a single mutex.
type RoomManager struct {
	logger   *slog.Logger
	settings RoomSettings

	rooms     roomRepo
	inventory inventoryRepo
	identity  identityRepo
	timers    timers
	bot       service.BotService

	notifier Notifier
	metrics  Metrics
	matches  MatchRecorder
	now      func() time.Time
	newCode  func() string

	mu         sync.Mutex
	baseCtx    context.Context
	membership map[string]string
	spectators map[string]string
	botTimers  map[string]int64
	checkTimer int64
}

func NewRoomManager(
	logger *slog.Logger,
	settings RoomSettings,
	rooms roomRepo,
	inventory inventoryRepo,
	identity identityRepo,
	timers timers,
	bot service.BotService,
	opts ...Option,
) *RoomManager {
	m := &RoomManager{
		logger:   logger,
		settings: settings,

		rooms:     rooms,
		inventory: inventory,
		identity:  identity,
		timers:    timers,
		bot:       bot,

		notifier: nopNotifier{},
		metrics:  nopMetrics{},
		matches:  nopRecorder{},
		now:      time.Now,
		newCode:  newRoomCode,

		baseCtx:    context.Background(),
		membership: make(map[string]string),
		spectators: make(map[string]string),
		botTimers:  make(map[string]int64),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// SetNotifier replaces the notifier. Used when the notifier itself depends on the manager.
func (that *RoomManager) SetNotifier(notifier Notifier) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.notifier = notifier
}

// Start restores seats from storage and registers the recurring bot join check.
func (that *RoomManager) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	that.mu.Lock()
	defer that.mu.Unlock()

	that.baseCtx = ctx

	rooms, err := that.rooms.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	for _, room := range rooms {
		for _, player := range room.Players {
			if !player.IsBot {
				that.membership[player.UserID] = room.ID
			}
		}

		if room.IsBotTurn() {
			that.scheduleBotMove(room.ID)
		}
	}

	that.metrics.SetActiveRooms(len(rooms))

	that.checkTimer = that.timers.AddTimer(that.settings.BotCheckInterval, that.settings.BotCheckInterval, func() {
		if err := that.CheckBotJoins(ctx); err != nil {
			that.logger.Error("bot join check failed", "error", err)
		}
	})

	log.Info("room manager started", "rooms", len(rooms))

	return nil
}

// Stop cancels the recurring check and every pending bot move.
func (that *RoomManager) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.checkTimer != 0 {
		that.timers.RemoveTimer(that.checkTimer)
		that.checkTimer = 0
	}

	for roomID, id := range that.botTimers {
		that.timers.RemoveTimer(id)
		delete(that.botTimers, roomID)
	}
}

func (that *RoomManager) CreateRoom(ctx context.Context, userID, stakeItemID string) (*entity.Room, error) {
	log := that.logger.With("method", "CreateRoom", "userID", userID)

	user, err := that.identity.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	seat, err := that.currentSeat(ctx, userID)
	if err != nil {
		return nil, err
	}
	if seat != nil {
		return nil, apperror.ErrAlreadyInGame
	}

	code, err := that.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	stake, err := that.takeStake(ctx, userID, stakeItemID)
	if err != nil {
		return nil, err
	}

	creator := &entity.Player{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
	}
	room := entity.NewRoom(uuid.NewString(), code, creator, stake, that.now())

	if err = that.rooms.CreateOrUpdate(ctx, room); err != nil {
		that.returnStake(ctx, userID, stake)
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	that.membership[userID] = room.ID
	delete(that.spectators, userID)

	that.metrics.RoomCreated()
	that.notifier.RoomUpdated(room.Clone())

	log.Info("room created", "roomID", room.ID, "code", room.Code)

	return room.Clone(), nil
}

func (that *RoomManager) JoinRoom(ctx context.Context, roomID, userID, stakeItemID string) (*entity.Room, error) {
	user, err := that.identity.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.join(ctx, roomID, user, stakeItemID)
}

// JoinRoomByCode joins the waiting room published under a human readable code.
func (that *RoomManager) JoinRoomByCode(ctx context.Context, code, userID, stakeItemID string) (*entity.Room, error) {
	user, err := that.identity.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	rooms, err := that.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	for _, room := range rooms {
		if room.Code == code && !room.IsFinished() {
			return that.join(ctx, room.ID, user, stakeItemID)
		}
	}

	return nil, fmt.Errorf("%w: code %s", apperror.ErrRoomNotFound, code)
}

func (that *RoomManager) join(ctx context.Context, roomID string, user *entity.User, stakeItemID string) (*entity.Room, error) {
	log := that.logger.With("method", "JoinRoom", "roomID", roomID, "userID", user.ID)

	seat, err := that.currentSeat(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if seat != nil && seat.ID != roomID {
		return nil, apperror.ErrAlreadyInGame
	}

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	switch {
	case !room.IsWaiting():
		return nil, apperror.ErrRoomNotWaiting
	case room.IsFull():
		return nil, apperror.ErrRoomFull
	case room.PlayerByUserID(user.ID) != nil:
		return nil, apperror.ErrAlreadyInRoom
	}

	stake, err := that.takeStake(ctx, user.ID, stakeItemID)
	if err != nil {
		return nil, err
	}

	player := &entity.Player{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Symbol:   freeSymbol(room),
	}
	room.AddPlayer(player, stake)
	room.Status = entity.StatusPlaying
	room.BotCheckScheduled = false
	room.LastActivity = that.now()

	if err = that.rooms.CreateOrUpdate(ctx, room); err != nil {
		that.returnStake(ctx, user.ID, stake)
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	that.membership[user.ID] = room.ID
	delete(that.spectators, user.ID)

	that.notifier.RoomUpdated(room.Clone())

	log.Info("player joined", "symbol", player.Symbol)

	return room.Clone(), nil
}

// MakeMove applies a human move. A finished game is settled and its match record saved once the
// manager lock is released.
func (that *RoomManager) MakeMove(ctx context.Context, roomID, userID string, cell int) (*entity.Room, error) {
	room, record, err := that.makeMove(ctx, roomID, userID, cell)
	that.saveMatch(ctx, record)

	return room, err
}

func (that *RoomManager) makeMove(ctx context.Context, roomID, userID string, cell int) (*entity.Room, *entity.MatchRecord, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.spectators[userID]; ok {
		return nil, nil, apperror.ErrSpectating
	}

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	player := room.PlayerByUserID(userID)
	if player == nil {
		return nil, nil, apperror.ErrNotInRoom
	}

	if err = tictactoe.MakeTurn(room, player, cell); err != nil {
		return nil, nil, fmt.Errorf("failed to make turn: %w", err)
	}

	record, err := that.afterTurn(ctx, room)
	if err != nil {
		return nil, nil, err
	}

	return room.Clone(), record, nil
}

// PlayBotTurn applies the bot's move if the room still waits for it. A stale call is a no-op.
func (that *RoomManager) PlayBotTurn(ctx context.Context, roomID string) error {
	record, err := that.playBotTurn(ctx, roomID)
	that.saveMatch(ctx, record)

	return err
}

func (that *RoomManager) playBotTurn(ctx context.Context, roomID string) (*entity.MatchRecord, error) {
	log := that.logger.With("method", "PlayBotTurn", "roomID", roomID)

	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.botTimers, roomID)

	room, err := that.getRoom(ctx, roomID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		log.Debug("room is gone, skipping bot move")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !room.IsBotTurn() {
		log.Debug("not the bot's turn, skipping bot move", "status", room.Status)
		return nil, nil
	}

	cell, err := that.bot.MakeTurn(room)
	if err != nil {
		return nil, fmt.Errorf("failed to make bot turn: %w", err)
	}

	that.metrics.BotMoved()
	log.Debug("bot moved", "cell", cell)

	return that.afterTurn(ctx, room)
}

func (that *RoomManager) LeaveRoom(ctx context.Context, userID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.spectators[userID]; ok {
		delete(that.spectators, userID)
		return nil
	}

	roomID, ok := that.membership[userID]
	if !ok {
		return apperror.ErrNotInRoom
	}

	room, err := that.getRoom(ctx, roomID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		delete(that.membership, userID)
		return apperror.ErrNotInRoom
	}
	if err != nil {
		return err
	}

	return that.leave(ctx, room, userID)
}

func (that *RoomManager) leave(ctx context.Context, room *entity.Room, userID string) error {
	log := that.logger.With("method", "LeaveRoom", "roomID", room.ID, "userID", userID)

	player := room.PlayerByUserID(userID)
	if player == nil {
		delete(that.membership, userID)
		return apperror.ErrNotInRoom
	}

	if !room.IsFinished() {
		that.returnStake(ctx, userID, room.Escrow[player.ID])
	}

	delete(that.membership, userID)
	that.cancelBotMove(room.ID)

	if len(room.Players) == 1 || (room.HumanCount() == 1 && room.HasBot()) {
		if err := that.rooms.DeleteByID(ctx, room.ID); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		for spectator, roomID := range that.spectators {
			if roomID == room.ID {
				delete(that.spectators, spectator)
			}
		}

		that.metrics.RoomClosed()
		that.notifier.RoomClosed(room.ID)

		log.Info("room deleted")

		return nil
	}

	room.RemovePlayer(player.ID)
	remaining := room.Players[0]

	if room.IsFinished() {
		room.CurrentTurn = remaining.ID
	} else {
		room.Status = entity.StatusWaiting
		room.ResetBoard(remaining.ID)
		room.BotCheckScheduled = true
	}
	room.LastActivity = that.now()

	if err := that.rooms.CreateOrUpdate(ctx, room); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	that.notifier.RoomUpdated(room.Clone())

	log.Info("player left", "status", room.Status)

	return nil
}

// SpectateRoom attaches an admin to a room read-only.
func (that *RoomManager) SpectateRoom(ctx context.Context, roomID, userID string) (*entity.Room, error) {
	user, err := that.identity.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsAdmin() {
		return nil, apperror.ErrNotAdmin
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	that.spectators[userID] = room.ID

	return room.Clone(), nil
}

// CurrentRoom returns the room the user sits in or spectates.
func (that *RoomManager) CurrentRoom(ctx context.Context, userID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, ok := that.spectators[userID]
	if !ok {
		roomID, ok = that.membership[userID]
	}
	if !ok {
		return nil, apperror.ErrNotInRoom
	}

	room, err := that.getRoom(ctx, roomID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		delete(that.spectators, userID)
		delete(that.membership, userID)
		return nil, apperror.ErrNotInRoom
	}
	if err != nil {
		return nil, err
	}

	return room.Clone(), nil
}

// AvailableRooms lists waiting rooms, oldest first.
func (that *RoomManager) AvailableRooms(ctx context.Context) ([]*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	rooms, err := that.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	waiting := make([]*entity.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsWaiting() {
			waiting = append(waiting, room.Clone())
		}
	}

	slices.SortFunc(waiting, func(a, b *entity.Room) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return waiting, nil
}

// CheckBotJoins seats the bot in every room that waited long enough for a human opponent.
func (that *RoomManager) CheckBotJoins(ctx context.Context) error {
	log := that.logger.With("method", "CheckBotJoins")

	that.mu.Lock()
	defer that.mu.Unlock()

	rooms, err := that.rooms.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	now := that.now()

	var errs []error
	for _, room := range rooms {
		if !that.botMayJoin(room, now) {
			continue
		}

		human := room.Players[0]

		bot := entity.NewBotPlayer(uuid.NewString(), that.settings.BotName, that.settings.BotStakeItemID)
		bot.Symbol = freeSymbol(room)

		room.AddPlayer(bot, that.botStake())
		room.Status = entity.StatusPlaying
		room.CurrentTurn = human.ID
		room.BotCheckScheduled = false
		room.LastActivity = now

		if err = that.rooms.CreateOrUpdate(ctx, room); err != nil {
			errs = append(errs, fmt.Errorf("failed to save room %s: %w", room.ID, err))
			continue
		}

		that.metrics.BotJoined()
		that.notifier.RoomUpdated(room.Clone())

		log.Info("bot joined room", "roomID", room.ID)
	}

	return errors.Join(errs...)
}

func (that *RoomManager) botMayJoin(room *entity.Room, now time.Time) bool {
	return room.IsWaiting() &&
		room.BotCheckScheduled &&
		len(room.Players) == 1 &&
		room.HumanCount() == 1 &&
		now.Sub(room.CreatedAt) >= that.settings.BotJoinAfter
}

// afterTurn persists a room after a move, settles a finished game and queues the bot's reply.
// The match record of a finished game is returned for saving outside the lock.
func (that *RoomManager) afterTurn(ctx context.Context, room *entity.Room) (*entity.MatchRecord, error) {
	room.LastActivity = that.now()

	if err := that.rooms.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	var record *entity.MatchRecord

	switch {
	case room.IsFinished():
		that.cancelBotMove(room.ID)
		record = that.settle(ctx, room)
	case room.IsBotTurn():
		that.scheduleBotMove(room.ID)
	}

	that.notifier.RoomUpdated(room.Clone())

	return record, nil
}

// settle pays out the escrow of a finished room. Inventory failures are logged, the room is not rolled back.
func (that *RoomManager) settle(ctx context.Context, room *entity.Room) *entity.MatchRecord {
	log := that.logger.With("method", "settle", "roomID", room.ID)

	outcome := OutcomeDraw

	if symbol := tictactoe.CalculateWinner(room.Board); symbol != entity.EmptyCell {
		winner := room.PlayerBySymbol(symbol)

		if winner.IsBot {
			outcome = OutcomeBotWin
			log.Info("bot won, stakes forfeited")
		} else {
			outcome = OutcomeWin
			for _, item := range room.Escrow {
				that.returnStake(ctx, winner.UserID, item)
			}
			log.Info("stakes paid to winner", "winner", winner.Username, "items", len(room.Escrow))
		}
	} else {
		for _, player := range room.Players {
			if player.IsBot {
				continue
			}
			that.returnStake(ctx, player.UserID, room.Escrow[player.ID])
		}
		log.Info("draw, stakes returned")
	}

	that.metrics.GameFinished(outcome)

	players := make([]entity.Player, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, *player)
	}

	return &entity.MatchRecord{
		RoomID:     room.ID,
		RoomCode:   room.Code,
		Players:    players,
		Winner:     room.Winner,
		Draw:       outcome == OutcomeDraw,
		Stakes:     room.Clone().Stakes,
		StartedAt:  room.CreatedAt,
		FinishedAt: room.LastActivity,
	}
}

// saveMatch stores a finished game. Called without the manager lock.
func (that *RoomManager) saveMatch(ctx context.Context, record *entity.MatchRecord) {
	if record == nil {
		return
	}

	if err := that.matches.Save(ctx, record); err != nil {
		that.logger.Error("failed to save match record", "roomID", record.RoomID, "error", err)
	}
}

func (that *RoomManager) scheduleBotMove(roomID string) {
	that.cancelBotMove(roomID)

	ctx := that.baseCtx
	that.botTimers[roomID] = that.timers.AddTimer(that.settings.BotMoveDelay, 0, func() {
		if err := that.PlayBotTurn(ctx, roomID); err != nil {
			that.logger.Error("bot move failed", "roomID", roomID, "error", err)
		}
	})
}

func (that *RoomManager) cancelBotMove(roomID string) {
	if id, ok := that.botTimers[roomID]; ok {
		that.timers.RemoveTimer(id)
		delete(that.botTimers, roomID)
	}
}

// currentSeat returns the non-finished room the user plays in. A seat in a finished room is released.
func (that *RoomManager) currentSeat(ctx context.Context, userID string) (*entity.Room, error) {
	roomID, ok := that.membership[userID]
	if !ok {
		return nil, nil
	}

	room, err := that.getRoom(ctx, roomID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		delete(that.membership, userID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if room.IsFinished() {
		if err = that.leave(ctx, room, userID); err != nil && !errors.Is(err, apperror.ErrNotInRoom) {
			return nil, fmt.Errorf("failed to leave finished room: %w", err)
		}
		return nil, nil
	}

	return room, nil
}

func (that *RoomManager) getRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	room, err := that.rooms.GetByID(ctx, roomID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrRoomNotFound, roomID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

func (that *RoomManager) uniqueCode(ctx context.Context) (string, error) {
	rooms, err := that.rooms.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list rooms: %w", err)
	}

	taken := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		taken[room.Code] = struct{}{}
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := that.newCode()
		if _, ok := taken[code]; !ok {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", apperror.ErrRoomCodeExhausted, maxCodeAttempts)
}

// takeStake moves one copy of the item out of the user's inventory.
func (that *RoomManager) takeStake(ctx context.Context, userID, itemID string) (entity.InventoryItem, error) {
	if itemID == "" {
		return entity.InventoryItem{}, apperror.ErrStakeUnavailable
	}

	item, err := that.inventory.GetItem(ctx, userID, itemID)
	if errors.Is(err, apperror.ErrNotFound) {
		return entity.InventoryItem{}, fmt.Errorf("%w: %s", apperror.ErrStakeUnavailable, itemID)
	}
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("failed to get item: %w", err)
	}

	if item.Quantity < 1 {
		return entity.InventoryItem{}, fmt.Errorf("%w: %s", apperror.ErrStakeUnavailable, itemID)
	}

	removed, err := that.inventory.RemoveItem(ctx, userID, itemID, 1)
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("failed to remove item: %w", err)
	}
	if !removed {
		return entity.InventoryItem{}, fmt.Errorf("%w: %s", apperror.ErrStakeUnavailable, itemID)
	}

	stake := *item
	stake.Quantity = 1

	return stake, nil
}

func (that *RoomManager) returnStake(ctx context.Context, userID string, item entity.InventoryItem) {
	if item.ID == "" {
		return
	}

	added, err := that.inventory.AddItem(ctx, userID, item, 1)
	if err != nil || !added {
		that.logger.Error("failed to return stake", "userID", userID, "itemID", item.ID, "error", err)
	}
}

func (that *RoomManager) botStake() entity.InventoryItem {
	return entity.InventoryItem{
		ID:       that.settings.BotStakeItemID,
		Name:     that.settings.BotStakeItemName,
		Quantity: 1,
	}
}

// freeSymbol is the mark not held by the seated player.
func freeSymbol(room *entity.Room) string {
	if room.PlayerBySymbol(entity.PlayerO) != nil {
		return entity.PlayerX
	}
	return entity.PlayerO
}

type nopNotifier struct{}

func (nopNotifier) RoomUpdated(*entity.Room) {}
func (nopNotifier) RoomClosed(string)        {}

type nopMetrics struct{}

func (nopMetrics) SetActiveRooms(int)  {}
func (nopMetrics) RoomCreated()        {}
func (nopMetrics) RoomClosed()         {}
func (nopMetrics) GameFinished(string) {}
func (nopMetrics) BotJoined()          {}
func (nopMetrics) BotMoved()           {}

type nopRecorder struct{}

func (nopRecorder) Save(context.Context, *entity.MatchRecord) error { return nil }
