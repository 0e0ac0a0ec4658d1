package service

import (
	"Freshgo/models"
	"Freshgo/pkg/context"
	"Freshgo/pkg/response"
	"Freshgo/types"
	base "context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStore 订单读写接口。CasStatus 必须是条件更新：
// 只有数据库中当前状态等于 from 时才允许落到 to。
// CancelAggregate 在一个事务里完成状态 CAS、积分冲正和补偿任务落库，
// 任何一步失败整体回滚
type OrderStore interface {
	FindBySn(ctx base.Context, orderSn string) (*models.Order, error)
	FindScoped(ctx base.Context, orderSn string, userID int64, admin bool) (*models.Order, error)
	CasStatus(ctx base.Context, orderSn string, from, to models.OrderStatus, extra map[string]interface{}) (bool, error)
	CancelAggregate(ctx base.Context, order *models.Order, to models.OrderStatus, tasks []*models.CompensationTask) (bool, error)
	Items(ctx base.Context, orderID int64) ([]*models.OrderItem, error)
	Consignee(ctx base.Context, orderID int64) (*models.OrderConsignee, error)
	ListByUser(ctx base.Context, userID int64, cursor int64, limit int) ([]*models.Order, error)
}

// CompensationStore 撤单补偿任务的运营侧读写
type CompensationStore interface {
	ListPending(ctx base.Context, limit int) ([]*models.CompensationTask, error)
	MarkDone(ctx base.Context, id string) error
}

type OrderService struct {
	Orders        OrderStore
	Compensations CompensationStore
}

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	Cancel(ctx base.Context, userID int64, role string, orderSn string) error
	Complete(ctx base.Context, orderSn string) error
	GetOrderList(ctx base.Context, userID int64, cursor int64, pageSize int) (*types.OrderListResponse, error)
	Detail(ctx base.Context, userID int64, role string, orderSn string) (*types.OrderDetail, error)
	PendingCompensations(ctx base.Context, limit int) ([]*models.CompensationTask, error)
	ResolveCompensation(ctx base.Context, id string) error
}

// Cancel 用户主动取消。按归属查单，按当前状态分支：
// 待支付 -> 取消并冲正积分；已支付待发货 -> 撤单、冲正积分并落补偿任务；
// 已完成拒绝；其余终态拒绝。状态落库、冲正和补偿任务在同一个事务里，
// 和网关回调赛跑输掉时返回冲突而不是把状态改坏
func (o *OrderService) Cancel(ctx base.Context, userID int64, role string, orderSn string) error {
	order, err := o.Orders.FindScoped(ctx, orderSn, userID, role == context.RoleAdmin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrOrderNotFound
		}
		return err
	}

	next, legal := models.NextStatus(order.Status, models.TriggerUserCancel)
	if !legal {
		if order.Status == models.OrderStatusCompleted {
			// 完成后的退单走客服通道，不走本接口
			return response.ErrOrderCompleted
		}
		return response.ErrOrderNotCancellable
	}

	var tasks []*models.CompensationTask
	if next == models.OrderStatusRevoked {
		// 已付款订单撤单，退款等动作不同步执行，落补偿任务由运营侧消化
		tasks = compensationTasks(order)
	}
	ok, err := o.Orders.CancelAggregate(ctx, order, next, tasks)
	if err != nil {
		return err
	}
	if !ok {
		// 回调抢先把订单推进了，让用户刷新后重试
		return response.ErrOrderNotCancellable
	}
	return nil
}

// compensationTasks 撤单需要的补偿动作：退款必有，
// 废票和取消出库只有常温单才有（冷链单不开票不推仓储）
func compensationTasks(order *models.Order) []*models.CompensationTask {
	tasks := []*models.CompensationTask{
		{ID: uuid.NewString(), OrderSn: order.OrderSn, Kind: models.CompensationRefund},
	}
	if order.Attribute == models.AttributeGeneral {
		tasks = append(tasks,
			&models.CompensationTask{ID: uuid.NewString(), OrderSn: order.OrderSn, Kind: models.CompensationInvoiceVoid},
			&models.CompensationTask{ID: uuid.NewString(), OrderSn: order.OrderSn, Kind: models.CompensationLogisticsCancel},
		)
	}
	return tasks
}

// Complete 物流签收结算，WAIT_DELIVER -> COMPLETED
func (o *OrderService) Complete(ctx base.Context, orderSn string) error {
	ok, err := o.Orders.CasStatus(ctx, orderSn,
		models.OrderStatusWaitDeliver, models.OrderStatusCompleted, nil)
	if err != nil {
		return err
	}
	if !ok {
		return response.NewError(40903, "订单状态已变更")
	}
	return nil
}

// PendingCompensations 运营后台拉取待处理补偿任务
func (o *OrderService) PendingCompensations(ctx base.Context, limit int) ([]*models.CompensationTask, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return o.Compensations.ListPending(ctx, limit)
}

// ResolveCompensation 运营侧处理完退款/废票/取消出库后销账
func (o *OrderService) ResolveCompensation(ctx base.Context, id string) error {
	return o.Compensations.MarkDone(ctx, id)
}

func (o *OrderService) GetOrderList(ctx base.Context, userID int64, cursor int64, pageSize int) (*types.OrderListResponse, error) {
	if pageSize <= 0 {
		pageSize = 10 // 默认每页10条
	}

	// 多查一条用来判断是否还有下一页
	orders, err := o.Orders.ListByUser(ctx, userID, cursor, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(orders) > pageSize {
		hasMore = true
		orders = orders[:pageSize]
	}

	resp := &types.OrderListResponse{
		Orders:  make([]*types.Order, 0, len(orders)),
		HasMore: hasMore,
	}
	if len(orders) == 0 {
		return resp, nil
	}
	resp.NextCursor = orders[len(orders)-1].ID

	for _, order := range orders {
		row := &types.Order{
			Id:        order.ID,
			OrderSn:   order.OrderSn,
			Status:    order.Status,
			StatusStr: order.Status.String(),
			Price:     order.TotalAmount,
			Attribute: string(order.Attribute),
			Created:   order.CreatedAt,
		}
		// 列表只回填首件商品
		items, err := o.Orders.Items(ctx, order.ID)
		if err == nil && len(items) > 0 {
			row.Name = items[0].ProductName
			row.Quantity = items[0].Quantity
		}
		resp.Orders = append(resp.Orders, row)
	}
	return resp, nil
}

func (o *OrderService) Detail(ctx base.Context, userID int64, role string, orderSn string) (*types.OrderDetail, error) {
	order, err := o.Orders.FindScoped(ctx, orderSn, userID, role == context.RoleAdmin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrOrderNotFound
		}
		return nil, err
	}

	detail := &types.OrderDetail{
		Order: types.Order{
			Id:        order.ID,
			OrderSn:   order.OrderSn,
			Status:    order.Status,
			StatusStr: order.Status.String(),
			Price:     order.TotalAmount,
			Attribute: string(order.Attribute),
			Created:   order.CreatedAt,
		},
		RelateNo: order.RelateNo,
		PaidAt:   order.PaidAt,
	}

	items, err := o.Orders.Items(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		detail.Items = append(detail.Items, types.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	if consignee, err := o.Orders.Consignee(ctx, order.ID); err == nil {
		detail.Consignee = &types.ConsigneeParam{
			DeliveryType: consignee.DeliveryType,
			Name:         consignee.Name,
			Phone:        consignee.Phone,
			Province:     consignee.Province,
			City:         consignee.City,
			Address:      consignee.Address,
			ZipCode:      consignee.ZipCode,
			StoreID:      consignee.StoreID,
			InvoiceTitle: consignee.InvoiceTitle,
			InvoiceTaxNo: consignee.InvoiceTaxNo,
			InvoiceEmail: consignee.InvoiceEmail,
		}
	}

	return detail, nil
}
