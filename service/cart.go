package service

import (
	"Freshgo/pkg/response"
	"Freshgo/types"
	"context"
	"errors"

	"gorm.io/gorm"
)

// CartStore 购物车存储
type CartStore interface {
	SetQuantity(ctx context.Context, userID int64, productID uint64, quantity uint32) error
	GetAll(ctx context.Context, userID int64) (map[uint64]uint32, error)
	Remove(ctx context.Context, userID int64, productID uint64) error
	Clear(ctx context.Context, userID int64) error
}

type CartService struct {
	Cart     CartStore
	Products ProductReader
}

var _ ICartService = (*CartService)(nil)

type ICartService interface {
	Set(ctx context.Context, userID int64, productID uint64, quantity uint32) error
	List(ctx context.Context, userID int64) (*types.CartResponse, error)
	Remove(ctx context.Context, userID int64, productID uint64) error
	Clear(ctx context.Context, userID int64) error
}

// Set 加车/改数量。库存校验是尽力而为的预检不是占位，
// 并发下单仍可能超卖，真正的拦截在下游出库环节
func (c *CartService) Set(ctx context.Context, userID int64, productID uint64, quantity uint32) error {
	stock, err := c.Products.GetInventory(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrProductNotFound
		}
		return err
	}
	if quantity > stock {
		return response.ErrInsufficientStock
	}
	return c.Cart.SetQuantity(ctx, userID, productID, quantity)
}

func (c *CartService) List(ctx context.Context, userID int64) (*types.CartResponse, error) {
	quantities, err := c.Cart.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &types.CartResponse{Items: make([]types.CartItem, 0, len(quantities))}
	if len(quantities) == 0 {
		return resp, nil
	}

	ids := make([]uint64, 0, len(quantities))
	for pid := range quantities {
		ids = append(ids, pid)
	}
	products, err := c.Products.GetByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		resp.Items = append(resp.Items, types.CartItem{
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Price:       p.Price,
			Quantity:    quantities[p.ID],
			Stock:       p.Stock,
			CoverImage:  p.CoverImage,
		})
	}
	return resp, nil
}

func (c *CartService) Remove(ctx context.Context, userID int64, productID uint64) error {
	return c.Cart.Remove(ctx, userID, productID)
}

func (c *CartService) Clear(ctx context.Context, userID int64) error {
	return c.Cart.Clear(ctx, userID)
}
