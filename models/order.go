package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus 订单状态
type OrderStatus int8

const (
	OrderStatusWaitPayment OrderStatus = 10 // 待支付
	OrderStatusWaitDeliver OrderStatus = 20 // 已支付待发货
	OrderStatusCompleted   OrderStatus = 30 // 已完成
	OrderStatusCancelled   OrderStatus = 40 // 支付前取消
	OrderStatusRevoked     OrderStatus = 50 // 支付后撤单
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusWaitPayment:
		return "WAIT_PAYMENT"
	case OrderStatusWaitDeliver:
		return "WAIT_DELIVER"
	case OrderStatusCompleted:
		return "COMPLETED"
	case OrderStatusCancelled:
		return "CANCELLED"
	case OrderStatusRevoked:
		return "REVOKED"
	}
	return "UNKNOWN"
}

// OrderTrigger 状态机触发事件
type OrderTrigger int8

const (
	TriggerUserCancel  OrderTrigger = iota + 1 // 用户取消
	TriggerPaySuccess                          // 网关回调支付成功
	TriggerDeliverDone                         // 物流签收结算
)

// NextStatus 订单状态迁移表。只有表内的边是合法迁移，
// 其余一律拒绝，调用方必须用条件更新落库（where status = from）
func NextStatus(from OrderStatus, trigger OrderTrigger) (OrderStatus, bool) {
	switch {
	case from == OrderStatusWaitPayment && trigger == TriggerUserCancel:
		return OrderStatusCancelled, true
	case from == OrderStatusWaitPayment && trigger == TriggerPaySuccess:
		return OrderStatusWaitDeliver, true
	case from == OrderStatusWaitDeliver && trigger == TriggerUserCancel:
		return OrderStatusRevoked, true
	case from == OrderStatusWaitDeliver && trigger == TriggerDeliverDone:
		return OrderStatusCompleted, true
	// 用户已取消后网关回调才到，说明钱实际付出去了，对账转入 REVOKED
	case from == OrderStatusCancelled && trigger == TriggerPaySuccess:
		return OrderStatusRevoked, true
	}
	return from, false
}

// OrderAttribute 商品属性分类，不同属性的商品不允许合并结算
type OrderAttribute string

const (
	AttributeGeneral   OrderAttribute = "GENERAL"
	AttributeColdChain OrderAttribute = "COLD_CHAIN"
)

// DeliveryType 配送方式
type DeliveryType string

const (
	DeliveryHome  DeliveryType = "HOME"  // 宅配
	DeliveryStore DeliveryType = "STORE" // 门店自提
)

// Order 订单主表。OrderSn / TradeNo / RelateNo 三个单号互相独立：
// 支付网关和开票系统对单号格式各有限制
type Order struct {
	ID          int64          `gorm:"primaryKey;column:id" json:"id"`
	UserID      int64          `gorm:"column:user_id;not null;index:idx_user_id" json:"user_id"`
	OrderSn     string         `gorm:"column:order_sn;type:varchar(32);not null;uniqueIndex:idx_order_sn" json:"order_sn"`
	TradeNo     string         `gorm:"column:trade_no;type:varchar(64);not null;uniqueIndex:idx_trade_no" json:"trade_no"`
	RelateNo    string         `gorm:"column:relate_no;type:varchar(32);not null;uniqueIndex:idx_relate_no" json:"relate_no"`
	Attribute   OrderAttribute `gorm:"column:attribute;type:varchar(16);not null;default:'GENERAL'" json:"attribute"`
	TotalAmount int64          `gorm:"column:total_amount;not null" json:"total_amount"` // 单位：分
	Status      OrderStatus    `gorm:"column:status;not null;default:10" json:"status"`
	RedeemLogID *uint64        `gorm:"column:redeem_log_id" json:"redeem_log_id"` // 本单使用的积分抵扣流水
	PaidAt      *time.Time     `gorm:"column:paid_at" json:"paid_at"`
	RevokedAt   *time.Time     `gorm:"column:revoked_at" json:"revoked_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderConsignee 订单收货/开票信息，一单一条
type OrderConsignee struct {
	ID            uint64       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID       int64        `gorm:"column:order_id;not null;uniqueIndex:idx_order_id" json:"order_id"`
	DeliveryType  DeliveryType `gorm:"column:delivery_type;type:varchar(8);not null;default:'HOME'" json:"delivery_type"`
	Name          string       `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Phone         string       `gorm:"column:phone;type:varchar(32);not null" json:"phone"`
	Province      string       `gorm:"column:province;type:varchar(64)" json:"province"`
	City          string       `gorm:"column:city;type:varchar(64)" json:"city"`
	Address       string       `gorm:"column:address;type:varchar(255)" json:"address"`
	ZipCode       string       `gorm:"column:zip_code;type:varchar(16)" json:"zip_code"`
	StoreID       int64        `gorm:"column:store_id" json:"store_id"` // 自提门店
	InvoiceTitle  string       `gorm:"column:invoice_title;type:varchar(128)" json:"invoice_title"`
	InvoiceTaxNo  string       `gorm:"column:invoice_tax_no;type:varchar(64)" json:"invoice_tax_no"`
	InvoiceEmail  string       `gorm:"column:invoice_email;type:varchar(128)" json:"invoice_email"`
	CreatedAt     time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderConsignee) TableName() string {
	return "order_consignees"
}

// OrderItem 订单明细，下单时快照成交价，建单后不再变更
type OrderItem struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID     int64     `gorm:"not null;index:idx_order_id;column:order_id" json:"order_id"`
	ProductID   uint64    `gorm:"column:product_id;index:idx_product_id" json:"product_id"` // 0 表示运费等虚拟行
	ProductName string    `gorm:"size:255;not null;column:product_name" json:"product_name"`
	UnitPrice   int64     `gorm:"not null;column:unit_price" json:"unit_price"` // 冗余下单单价（分），锁定成交价
	Quantity    uint32    `gorm:"default:1;not null;column:quantity" json:"quantity"`
	Subtotal    int64     `gorm:"not null;column:subtotal" json:"subtotal"` // 单价 * 数量
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// IsDeliveryFee 运费虚拟行不参与返点、不推仓储
func (i *OrderItem) IsDeliveryFee() bool {
	return i.ProductID == 0
}

// PayRecord 支付流水记录表
type PayRecord struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderSn       string         `gorm:"column:order_sn;type:varchar(32);not null;uniqueIndex:idx_order_sn" json:"order_sn"`
	PayPlatform   int8           `gorm:"column:pay_platform;not null;default:1" json:"pay_platform"` // 1:微信
	TransactionId string         `gorm:"column:transaction_id;type:varchar(64);index:idx_transaction_id" json:"transaction_id"`
	AmountTotal   int64          `gorm:"column:amount_total;not null;default:0" json:"amount_total"`
	PayStatus     int8           `gorm:"column:pay_status;not null;default:0" json:"pay_status"` // 0:待支付 1:成功 2:失败
	NotifyRaw     datatypes.JSON `gorm:"column:notify_raw" json:"notify_raw"`                    // 网关回调原文，留档对账
	FinishedAt    *time.Time     `gorm:"column:finished_at" json:"finished_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PayRecord) TableName() string {
	return "pay_records"
}
