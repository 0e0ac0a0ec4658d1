package service

import (
	"Freshgo/dao"
	"Freshgo/models"
	"Freshgo/pkg/log"
	"Freshgo/pkg/response"
	"Freshgo/pkg/snowflake"
	"Freshgo/pkg/utils"
	"Freshgo/types"
	"context"
	"errors"

	"go.uber.org/zap"
)

// OrderWriter 建单写接口，实现方保证整个聚合在一个事务内落库
type OrderWriter interface {
	CreateAggregate(
		ctx context.Context,
		order *models.Order,
		consignee *models.OrderConsignee,
		items []*models.OrderItem,
		usePoints int64,
	) error
}

type SettlementService struct {
	Pricing IPricingService
	Member  IMemberService
	Points  IPointService
	Orders  OrderWriter
}

var _ ISettlementService = (*SettlementService)(nil)

type ISettlementService interface {
	Quote(ctx context.Context, userID int64, req *types.QuoteRequest) (*types.SettlementQuote, error)
	CreateOrder(ctx context.Context, userID int64, req *types.CreateOrderRequest) (*types.CreateOrderResponse, error)
}

// Quote 结算试算：计价 + 校验积分余额。
// 注意：UsePoints 目前只做台账扣减，不抵减应付金额，
// 折抵公式尚无产品定义，报价里原样带回申请值
func (s *SettlementService) Quote(ctx context.Context, userID int64, req *types.QuoteRequest) (*types.SettlementQuote, error) {
	level, err := s.Member.LevelOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	itemization, err := s.Pricing.Itemize(ctx, req.Items, req.Attribute)
	if err != nil {
		return nil, err
	}

	if req.UsePoints > 0 {
		account, err := s.Points.Balance(ctx, userID)
		if err != nil {
			return nil, err
		}
		if req.UsePoints > account.Balance {
			return nil, response.ErrInsufficientPoints
		}
	}

	attribute := req.Attribute
	if attribute == "" {
		attribute = models.AttributeGeneral
	}

	return &types.SettlementQuote{
		Itemization:  *itemization,
		Level:        level,
		Attribute:    attribute,
		PaymentPrice: itemization.PriceFor(level),
		UsePoints:    req.UsePoints,
	}, nil
}

// CreateOrder 把报价落成订单：服务端重新计价（不信任客户端金额），
// 生成订单号/交易号/发票关联号三个独立单号，订单、收货人、明细、
// 积分抵扣在同一事务内落库，初始状态 WAIT_PAYMENT
func (s *SettlementService) CreateOrder(ctx context.Context, userID int64, req *types.CreateOrderRequest) (*types.CreateOrderResponse, error) {
	quote, err := s.Quote(ctx, userID, &types.QuoteRequest{
		Items:     req.Items,
		Attribute: req.Attribute,
		UsePoints: req.UsePoints,
	})
	if err != nil {
		return nil, err
	}

	orderID := snowflake.GenOrderID()
	order := &models.Order{
		ID:          orderID,
		UserID:      userID,
		OrderSn:     utils.GenerateOrderSn(userID),
		TradeNo:     utils.GenerateTradeNo("FG", orderID),
		RelateNo:    utils.GenerateRelateNo(orderID),
		Attribute:   quote.Attribute,
		TotalAmount: quote.PaymentPrice,
		Status:      models.OrderStatusWaitPayment,
	}

	consignee := &models.OrderConsignee{
		DeliveryType: req.Consignee.DeliveryType,
		Name:         req.Consignee.Name,
		Phone:        req.Consignee.Phone,
		Province:     req.Consignee.Province,
		City:         req.Consignee.City,
		Address:      req.Consignee.Address,
		ZipCode:      req.Consignee.ZipCode,
		StoreID:      req.Consignee.StoreID,
		InvoiceTitle: req.Consignee.InvoiceTitle,
		InvoiceTaxNo: req.Consignee.InvoiceTaxNo,
		InvoiceEmail: req.Consignee.InvoiceEmail,
	}

	items := buildOrderItems(quote)

	if err := s.Orders.CreateAggregate(ctx, order, consignee, items, req.UsePoints); err != nil {
		if errors.Is(err, dao.ErrInsufficientPoints) {
			// 报价后余额被并发用掉了
			return nil, response.ErrInsufficientPoints
		}
		log.L.Error("create order failed",
			zap.Int64("user_id", userID),
			zap.String("order_sn", order.OrderSn),
			zap.Error(err))
		return nil, err
	}

	return &types.CreateOrderResponse{
		OrderSn:      order.OrderSn,
		TradeNo:      order.TradeNo,
		PaymentPrice: order.TotalAmount,
	}, nil
}

// buildOrderItems 按下单人实际档位快照成交价，明细建单后不可变
func buildOrderItems(quote *types.SettlementQuote) []*models.OrderItem {
	items := make([]*models.OrderItem, 0, len(quote.Items))
	for _, line := range quote.Items {
		unit := line.Price
		switch quote.Level {
		case types.LevelVip:
			unit = line.VipPrice
		case types.LevelSvip:
			unit = line.SvipPrice
		}
		items = append(items, &models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   unit,
			Quantity:    line.Quantity,
			Subtotal:    unit * int64(line.Quantity),
		})
	}
	return items
}
