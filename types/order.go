package types

import (
	"time"

	"Freshgo/models"
)

type Order struct {
	Id        int64              `json:"id"`
	OrderSn   string             `json:"order_sn"`
	Status    models.OrderStatus `json:"status"`
	StatusStr string             `json:"status_str"`
	Price     int64              `json:"price"`
	Attribute string             `json:"attribute"`
	Created   time.Time          `json:"created"`
	Name      string             `json:"name"` // 首件商品名，列表展示用
	Quantity  uint32             `json:"quantity"`
}

type OrderItem struct {
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    uint32 `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

type OrderDetail struct {
	Order
	RelateNo  string          `json:"relate_no"`
	Items     []OrderItem     `json:"items"`
	Consignee *ConsigneeParam `json:"consignee,omitempty"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

type OrderListResponse struct {
	Orders     []*Order `json:"orders"`
	NextCursor int64    `json:"next_cursor"`
	HasMore    bool     `json:"has_more"`
}

// OrderEvent 推送到 MQ 的订单状态事件
type OrderEvent struct {
	OrderSn   string `json:"order_sn"`
	UserID    int64  `json:"user_id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}
