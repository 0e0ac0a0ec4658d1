package service

import (
	"Freshgo/config"
	"Freshgo/models"
	"Freshgo/pkg/log"
	"Freshgo/types"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PayJournal 支付流水落库
type PayJournal interface {
	MarkPaySuccess(ctx context.Context, orderSn string, transactionID string, raw []byte) error
}

// EventPublisher 订单事件投递
type EventPublisher interface {
	SendMsg(ctx context.Context, topic string, tag string, body []byte) error
}

type PayService struct {
	RocketMQ    *config.RocketMQConfig
	Orders      OrderStore
	Journal     PayJournal
	Points      IPointService
	Fulfillment IFulfillmentService
	Invoice     IInvoiceService
	Publisher   EventPublisher // 允许为空，MQ 不可用时降级为只记日志
}

var _ IPayService = (*PayService)(nil)

type IPayService interface {
	ProcessPaySuccess(ctx context.Context, orderSn string, transactionID string, raw []byte) error
	ProcessPayFail(ctx context.Context, orderSn string, raw []byte) error
}

// ProcessPaySuccess 网关成功回调的业务处理。
// 对回调方永远幂等：不管内部命中哪个分支都返回 nil 让网关停止重试，
// 只有数据库不可用这类致命错误才向上抛。
// 状态推进全部走条件更新，和用户取消赛跑时收敛到 CANCELLED->REVOKED 对账路径
func (p *PayService) ProcessPaySuccess(ctx context.Context, orderSn string, transactionID string, raw []byte) error {
	order, err := p.Orders.FindBySn(ctx, orderSn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 回调单号对不上任何订单，记异常等人工对账
			log.L.Error("pay notify for unknown order", zap.String("order_sn", orderSn))
			return nil
		}
		return err
	}

	next, legal := models.NextStatus(order.Status, models.TriggerPaySuccess)
	if !legal {
		// 已发货/已完成订单不应再有回调，记异常但照常应答
		log.L.Error("pay notify on settled order",
			zap.String("order_sn", orderSn),
			zap.String("status", order.Status.String()))
		return nil
	}

	if next == models.OrderStatusRevoked {
		return p.revokeCancelled(ctx, order)
	}

	now := time.Now()
	ok, err := p.Orders.CasStatus(ctx, orderSn, order.Status, next,
		map[string]interface{}{"paid_at": &now})
	if err != nil {
		return err
	}
	if !ok {
		// 用户取消抢先落库，重读后走取消->撤单对账
		return p.reconcileAfterRace(ctx, orderSn)
	}
	if err := p.Journal.MarkPaySuccess(ctx, orderSn, transactionID, raw); err != nil {
		log.L.Error("mark pay record failed", zap.String("order_sn", orderSn), zap.Error(err))
	}
	p.afterPaid(ctx, order)
	return nil
}

func (p *PayService) reconcileAfterRace(ctx context.Context, orderSn string) error {
	order, err := p.Orders.FindBySn(ctx, orderSn)
	if err != nil {
		return err
	}
	if next, legal := models.NextStatus(order.Status, models.TriggerPaySuccess); legal && next == models.OrderStatusRevoked {
		return p.revokeCancelled(ctx, order)
	}
	log.L.Error("pay notify lost cas race",
		zap.String("order_sn", orderSn),
		zap.String("status", order.Status.String()))
	return nil
}

// revokeCancelled 用户先取消、网关后回调：钱实际付出去了，转 REVOKED 等退款补偿。
// 目标状态同样来自迁移表，调用方已确认这条边合法
func (p *PayService) revokeCancelled(ctx context.Context, order *models.Order) error {
	next, _ := models.NextStatus(order.Status, models.TriggerPaySuccess)
	now := time.Now()
	ok, err := p.Orders.CasStatus(ctx, order.OrderSn, order.Status, next,
		map[string]interface{}{"revoked_at": &now})
	if err != nil {
		return err
	}
	if ok {
		log.L.Warn("cancelled order got pay success, revoked",
			zap.String("order_sn", order.OrderSn))
		p.publish(ctx, order, "order.revoked")
	}
	return nil
}

// afterPaid 支付成功后的下游动作：开票和推仓储只做常温单，
// 返点给推荐人，事件进 MQ。全部尽力而为，失败不回滚已落库的状态
func (p *PayService) afterPaid(ctx context.Context, order *models.Order) {
	items, err := p.Orders.Items(ctx, order.ID)
	if err != nil {
		log.L.Error("load order items failed", zap.String("order_sn", order.OrderSn), zap.Error(err))
		items = nil
	}

	if order.Attribute == models.AttributeGeneral {
		consignee, err := p.Orders.Consignee(ctx, order.ID)
		if err != nil {
			log.L.Error("load consignee failed", zap.String("order_sn", order.OrderSn), zap.Error(err))
		} else {
			if err := p.Invoice.Issue(ctx, order, consignee); err != nil {
				log.L.Error("issue invoice failed",
					zap.String("order_sn", order.OrderSn), zap.Error(err))
			}
			if err := p.Fulfillment.CreateOutbound(ctx, order, consignee, items); err != nil {
				log.L.Error("create outbound order failed",
					zap.String("order_sn", order.OrderSn), zap.Error(err))
			}
		}
	}

	var deliveryFee int64
	for _, item := range items {
		if item.IsDeliveryFee() {
			deliveryFee += item.Subtotal
		}
	}
	if err := p.Points.OrderCashback(ctx, order, deliveryFee); err != nil {
		log.L.Error("order cashback failed",
			zap.String("order_sn", order.OrderSn), zap.Error(err))
	}

	p.publish(ctx, order, "order.paid")
}

func (p *PayService) publish(ctx context.Context, order *models.Order, tag string) {
	if p.Publisher == nil || p.RocketMQ == nil {
		return
	}
	event := types.OrderEvent{
		OrderSn:   order.OrderSn,
		UserID:    order.UserID,
		Status:    tag,
		Amount:    order.TotalAmount,
		Timestamp: time.Now().Unix(),
	}
	body, _ := json.Marshal(event)
	if err := p.Publisher.SendMsg(ctx, p.RocketMQ.OrderTopic, tag, body); err != nil {
		log.L.Error("publish order event failed",
			zap.String("order_sn", order.OrderSn),
			zap.String("tag", tag),
			zap.Error(err))
	}
}

// ProcessPayFail 失败回调只记日志不动订单，用户可重新下单支付
func (p *PayService) ProcessPayFail(ctx context.Context, orderSn string, raw []byte) error {
	log.L.Info("pay notify failed state",
		zap.String("order_sn", orderSn),
		zap.ByteString("raw", raw))
	return nil
}
