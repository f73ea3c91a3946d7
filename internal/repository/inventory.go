package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

type InventoryRepository interface {
	GetItem(ctx context.Context, userID, itemID string) (*entity.InventoryItem, error)
	ListItems(ctx context.Context, userID string) ([]entity.InventoryItem, error)
	AddItem(ctx context.Context, userID string, item entity.InventoryItem, quantity int) (bool, error)
	RemoveItem(ctx context.Context, userID, itemID string, quantity int) (bool, error)
}

// removeItemScript decrements the quantity only when enough copies are held and drops the item at zero.
var removeItemScript = redis.NewScript(`
local held = tonumber(redis.call('HGET', KEYS[2], ARGV[1]) or '0')
local want = tonumber(ARGV[2])
if held < want then
	return 0
end
if held == want then
	redis.call('HDEL', KEYS[1], ARGV[1])
	redis.call('HDEL', KEYS[2], ARGV[1])
else
	redis.call('HINCRBY', KEYS[2], ARGV[1], -want)
end
return 1
`)

type dbInventory struct {
	client *redis.Client
}

func NewInventoryRepository(client *redis.Client) InventoryRepository {
	return &dbInventory{
		client: client,
	}
}

func itemsKey(userID string) string {
	return "inventory:" + userID + ":items"
}

func quantityKey(userID string) string {
	return "inventory:" + userID + ":quantity"
}

func (that *dbInventory) GetItem(ctx context.Context, userID, itemID string) (*entity.InventoryItem, error) {
	raw, err := that.client.HGet(ctx, itemsKey(userID), itemID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	quantity, err := that.client.HGet(ctx, quantityKey(userID), itemID).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get item quantity: %w", err)
	}

	var item entity.InventoryItem
	if err = json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	item.Quantity = quantity

	return &item, nil
}

func (that *dbInventory) ListItems(ctx context.Context, userID string) ([]entity.InventoryItem, error) {
	items, err := that.client.HGetAll(ctx, itemsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	quantities, err := that.client.HGetAll(ctx, quantityKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list item quantities: %w", err)
	}

	result := make([]entity.InventoryItem, 0, len(items))
	for itemID, raw := range items {
		var item entity.InventoryItem
		if err = json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item %s: %w", itemID, err)
		}

		item.Quantity, _ = strconv.Atoi(quantities[itemID])
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (that *dbInventory) AddItem(ctx context.Context, userID string, item entity.InventoryItem, quantity int) (bool, error) {
	if item.ID == "" || quantity < 1 {
		return false, nil
	}

	item.Quantity = 0
	itemJSON, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("could not marshal item: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, itemsKey(userID), item.ID, itemJSON)
		pipe.HIncrBy(ctx, quantityKey(userID), item.ID, int64(quantity))
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to add item: %w", err)
	}

	return true, nil
}

func (that *dbInventory) RemoveItem(ctx context.Context, userID, itemID string, quantity int) (bool, error) {
	if quantity < 1 {
		return false, nil
	}

	removed, err := removeItemScript.Run(ctx, that.client, []string{itemsKey(userID), quantityKey(userID)}, itemID, quantity).Int()
	if err != nil {
		return false, fmt.Errorf("failed to remove item: %w", err)
	}

	return removed == 1, nil
}
