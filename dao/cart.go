package dao

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Cart 购物车存 redis hash，field 为商品 ID、value 为数量
type Cart struct {
	Redis *redis.Client
}

func NewCart(rdb *redis.Client) *Cart {
	return &Cart{Redis: rdb}
}

func cartKey(userID int64) string {
	return fmt.Sprintf("freshgo:cart:%d", userID)
}

func (c *Cart) SetQuantity(ctx context.Context, userID int64, productID uint64, quantity uint32) error {
	return c.Redis.HSet(ctx, cartKey(userID), strconv.FormatUint(productID, 10), quantity).Err()
}

func (c *Cart) GetAll(ctx context.Context, userID int64) (map[uint64]uint32, error) {
	raw, err := c.Redis.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	result := make(map[uint64]uint32, len(raw))
	for field, value := range raw {
		pid, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			continue
		}
		result[pid] = uint32(qty)
	}
	return result, nil
}

func (c *Cart) Remove(ctx context.Context, userID int64, productID uint64) error {
	return c.Redis.HDel(ctx, cartKey(userID), strconv.FormatUint(productID, 10)).Err()
}

func (c *Cart) Clear(ctx context.Context, userID int64) error {
	return c.Redis.Del(ctx, cartKey(userID)).Err()
}
