package dao

import (
	"Freshgo/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{
		Repo: NewRepo[models.Order](db),
	}
}

func (o *Order) FindBySn(ctx context.Context, orderSn string) (*models.Order, error) {
	return o.Repo.FindByWhere(ctx, "order_sn = ?", orderSn)
}

// FindByTradeNo 支付网关回调只带外部交易单号，按 trade_no 反查订单
func (o *Order) FindByTradeNo(ctx context.Context, tradeNo string) (*models.Order, error) {
	return o.Repo.FindByWhere(ctx, "trade_no = ?", tradeNo)
}

// FindScoped 按归属查询：普通用户只能命中自己的订单。
// 查不到与无权限统一返回 gorm.ErrRecordNotFound，不暴露订单是否存在
func (o *Order) FindScoped(ctx context.Context, orderSn string, userID int64, admin bool) (*models.Order, error) {
	if admin {
		return o.FindBySn(ctx, orderSn)
	}
	return o.Repo.FindByWhere(ctx, "order_sn = ? AND user_id = ?", orderSn, userID)
}

// CasStatus 条件状态更新：只有当前状态等于 from 时才落库，
// RowsAffected 为 0 说明有并发对手先一步改掉了状态
func (o *Order) CasStatus(ctx context.Context, orderSn string, from, to models.OrderStatus, extra map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := o.Db.WithContext(ctx).Model(&models.Order{}).
		Where("order_sn = ? AND status = ?", orderSn, from).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (o *Order) Items(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := o.Db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	return items, err
}

func (o *Order) Consignee(ctx context.Context, orderID int64) (*models.OrderConsignee, error) {
	var c models.OrderConsignee
	err := o.Db.WithContext(ctx).Where("order_id = ?", orderID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser 游标分页，多查一条判断 hasMore
func (o *Order) ListByUser(ctx context.Context, userID int64, cursor int64, limit int) ([]*models.Order, error) {
	query := o.Db.WithContext(ctx).Where("user_id = ?", userID)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	var orders []*models.Order
	err := query.Order("id desc").Limit(limit).Find(&orders).Error
	return orders, err
}

// CancelAggregate 撤单事务：条件状态更新、积分冲正、补偿任务落库一起提交。
// 状态 CAS 未命中说明并发对手先改了状态，返回 false 且不产生任何写入；
// 冲正或补偿落库失败则整体回滚，不会出现状态改了积分丢了的半截单
func (o *Order) CancelAggregate(
	ctx context.Context,
	order *models.Order,
	to models.OrderStatus,
	tasks []*models.CompensationTask,
) (bool, error) {
	var ok bool
	err := o.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": to}
		if to == models.OrderStatusRevoked {
			now := time.Now()
			updates["revoked_at"] = &now
		}
		res := tx.Model(&models.Order{}).
			Where("order_sn = ? AND status = ?", order.OrderSn, order.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		ok = true

		if order.RedeemLogID != nil {
			if err := reverseRedeem(tx, *order.RedeemLogID); err != nil {
				return err
			}
		}
		if len(tasks) > 0 {
			return tx.Create(&tasks).Error
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// CreateAggregate 建单事务：订单 + 收货人 + 明细 + 初始支付流水，
// 申请了积分抵扣时在同一事务内完成条件扣减，失败整体回滚
func (o *Order) CreateAggregate(
	ctx context.Context,
	order *models.Order,
	consignee *models.OrderConsignee,
	items []*models.OrderItem,
	usePoints int64,
) error {
	return o.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if usePoints > 0 {
			redeemLog, err := applyRedeem(tx, order.UserID, usePoints, order.OrderSn)
			if err != nil {
				return err
			}
			order.RedeemLogID = &redeemLog.ID
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		consignee.OrderID = order.ID
		if err := tx.Create(consignee).Error; err != nil {
			return err
		}

		for _, item := range items {
			item.OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		payRecord := &models.PayRecord{
			OrderSn:     order.OrderSn,
			PayPlatform: 1,
			AmountTotal: order.TotalAmount,
			PayStatus:   0,
		}
		return tx.Create(payRecord).Error
	})
}

// MarkPaySuccess 回调落流水：更新支付流水并记录网关原文
func (o *Order) MarkPaySuccess(ctx context.Context, orderSn string, transactionID string, raw []byte) error {
	now := time.Now()
	return o.Db.WithContext(ctx).Model(&models.PayRecord{}).
		Where("order_sn = ?", orderSn).
		Updates(map[string]interface{}{
			"transaction_id": transactionID,
			"pay_status":     1,
			"notify_raw":     raw,
			"finished_at":    &now,
		}).Error
}
