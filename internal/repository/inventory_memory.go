package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

type memoryInventory struct {
	mu    sync.Mutex
	items map[string]map[string]entity.InventoryItem
}

func NewMemoryInventoryRepository() InventoryRepository {
	return &memoryInventory{
		items: make(map[string]map[string]entity.InventoryItem),
	}
}

func (that *memoryInventory) GetItem(_ context.Context, userID, itemID string) (*entity.InventoryItem, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	item, ok := that.items[userID][itemID]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	return &item, nil
}

func (that *memoryInventory) ListItems(_ context.Context, userID string) ([]entity.InventoryItem, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	result := make([]entity.InventoryItem, 0, len(that.items[userID]))
	for _, item := range that.items[userID] {
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (that *memoryInventory) AddItem(_ context.Context, userID string, item entity.InventoryItem, quantity int) (bool, error) {
	if item.ID == "" || quantity < 1 {
		return false, nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	owned, ok := that.items[userID]
	if !ok {
		owned = make(map[string]entity.InventoryItem)
		that.items[userID] = owned
	}

	held := owned[item.ID].Quantity
	item.Quantity = held + quantity
	owned[item.ID] = item

	return true, nil
}

func (that *memoryInventory) RemoveItem(_ context.Context, userID, itemID string, quantity int) (bool, error) {
	if quantity < 1 {
		return false, nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	item, ok := that.items[userID][itemID]
	if !ok || item.Quantity < quantity {
		return false, nil
	}

	item.Quantity -= quantity
	if item.Quantity == 0 {
		delete(that.items[userID], itemID)
	} else {
		that.items[userID][itemID] = item
	}

	return true, nil
}
