package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

type MatchRepository interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
	ListByRoom(ctx context.Context, roomID string) ([]entity.MatchRecord, error)
}

type matchModel struct {
	ID         uint   `gorm:"primaryKey"`
	RoomID     string `gorm:"index;not null"`
	RoomCode   string `gorm:"not null"`
	Players    string `gorm:"type:jsonb;not null"`
	Winner     string
	Draw       bool
	Stakes     string `gorm:"type:jsonb;not null"`
	StartedAt  time.Time
	FinishedAt time.Time
}

func (matchModel) TableName() string {
	return "matches"
}

type dbMatch struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &dbMatch{
		db: db,
	}
}

// Migrate creates or updates the matches table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&matchModel{}); err != nil {
		return fmt.Errorf("failed to migrate matches: %w", err)
	}

	return nil
}

func (that *dbMatch) Save(ctx context.Context, record *entity.MatchRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return fmt.Errorf("could not marshal players: %w", err)
	}

	stakes, err := json.Marshal(record.Stakes)
	if err != nil {
		return fmt.Errorf("could not marshal stakes: %w", err)
	}

	model := matchModel{
		RoomID:     record.RoomID,
		RoomCode:   record.RoomCode,
		Players:    string(players),
		Winner:     record.Winner,
		Draw:       record.Draw,
		Stakes:     string(stakes),
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
	}

	if err = that.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (that *dbMatch) ListByRoom(ctx context.Context, roomID string) ([]entity.MatchRecord, error) {
	var models []matchModel

	err := that.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("finished_at").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	records := make([]entity.MatchRecord, 0, len(models))
	for _, model := range models {
		record := entity.MatchRecord{
			RoomID:     model.RoomID,
			RoomCode:   model.RoomCode,
			Winner:     model.Winner,
			Draw:       model.Draw,
			StartedAt:  model.StartedAt,
			FinishedAt: model.FinishedAt,
		}

		if err = json.Unmarshal([]byte(model.Players), &record.Players); err != nil {
			return nil, fmt.Errorf("failed to unmarshal players: %w", err)
		}
		if err = json.Unmarshal([]byte(model.Stakes), &record.Stakes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stakes: %w", err)
		}

		records = append(records, record)
	}

	return records, nil
}
