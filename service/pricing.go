package service

import (
	"Freshgo/config"
	"Freshgo/models"
	"Freshgo/pkg/response"
	"Freshgo/types"
	"context"
)

// ProductReader 商品读接口，结算只读不写
type ProductReader interface {
	GetByIds(ctx context.Context, ids []uint64) ([]*models.Product, error)
	GetInventory(ctx context.Context, productID uint64) (uint32, error)
}

type PricingService struct {
	Settlement *config.Settlement
	Products   ProductReader
}

var _ IPricingService = (*PricingService)(nil)

type IPricingService interface {
	Itemize(ctx context.Context, cart []types.CartLine, attribute models.OrderAttribute) (*types.Itemization, error)
}

// 单商品合并后的数量上限，超出按参数错误拒绝，顺带挡掉恶意凑整型溢出的购物车
const maxLineQuantity = 9999

// Itemize 购物车计价：
// 同一商品多行先合并数量；任何一个商品不存在或已下架则整单失败，
// 不返回部分结果；不同属性（常温/冷链）商品不允许合并结算；
// 运费大于 0 时折成一条虚拟明细并入各档合计
func (s *PricingService) Itemize(ctx context.Context, cart []types.CartLine, attribute models.OrderAttribute) (*types.Itemization, error) {
	if attribute == "" {
		attribute = models.AttributeGeneral
	}
	merged := make(map[uint64]uint64)
	order := make([]uint64, 0, len(cart))
	for _, line := range cart {
		if _, ok := merged[line.ProductID]; !ok {
			order = append(order, line.ProductID)
		}
		merged[line.ProductID] += uint64(line.Quantity)
		if merged[line.ProductID] > maxLineQuantity {
			return nil, response.NewError(40007, "商品数量超出单笔上限")
		}
	}

	products, err := s.Products.GetByIds(ctx, order)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint64]*models.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}
	for _, pid := range order {
		p, ok := productMap[pid]
		if !ok {
			return nil, response.ErrProductNotFound
		}
		if p.Attribute != attribute {
			return nil, response.NewError(40006, "常温与冷链商品不能合并结算")
		}
	}

	result := &types.Itemization{
		Items: make([]types.SettlementItem, 0, len(order)+1),
	}
	for _, pid := range order {
		p := productMap[pid]
		qty := uint32(merged[pid])
		result.Items = append(result.Items, types.SettlementItem{
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Quantity:    qty,
			Price:       p.Price,
			MemberPrice: p.MemberPrice,
			VipPrice:    p.VipPrice,
			SvipPrice:   p.SvipPrice,
		})
		n := int64(qty)
		result.Total += p.Price * n
		result.MemberTotal += p.MemberPrice * n
		result.VipTotal += p.VipPrice * n
		result.SvipTotal += p.SvipPrice * n
		result.TotalQuantity += qty
	}

	fee := s.Settlement.DeliveryFee
	if fee > 0 {
		result.Items = append(result.Items, types.SettlementItem{
			ProductID:   0,
			ProductName: "运费",
			Quantity:    1,
			Price:       fee,
			MemberPrice: fee,
			VipPrice:    fee,
			SvipPrice:   fee,
		})
		result.Total += fee
		result.MemberTotal += fee
		result.VipTotal += fee
		result.SvipTotal += fee
		result.TotalQuantity += 1
		result.DeliveryFee = fee
	}

	return result, nil
}
