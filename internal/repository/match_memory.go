package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

// memoryMatch keeps match history in process memory, in save order.
type memoryMatch struct {
	mu      sync.RWMutex
	records []entity.MatchRecord
}

func NewMemoryMatchRepository() MatchRepository {
	return &memoryMatch{}
}

func (that *memoryMatch) Save(_ context.Context, record *entity.MatchRecord) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.records = append(that.records, *record)

	return nil
}

func (that *memoryMatch) ListByRoom(_ context.Context, roomID string) ([]entity.MatchRecord, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	result := make([]entity.MatchRecord, 0)
	for _, record := range that.records {
		if record.RoomID == roomID {
			result = append(result, record)
		}
	}

	return result, nil
}
