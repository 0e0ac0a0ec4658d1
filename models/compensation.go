package models

import "time"

// CompensationKind 补偿动作类型
type CompensationKind string

const (
	CompensationRefund          CompensationKind = "REFUND"           // 原路退款
	CompensationInvoiceVoid     CompensationKind = "INVOICE_VOID"     // 发票作废
	CompensationLogisticsCancel CompensationKind = "LOGISTICS_CANCEL" // 出库单取消
)

const (
	CompensationPending = 0
	CompensationDone    = 1
)

// CompensationTask 已付款订单撤单后的待补偿动作。
// 撤单主流程只负责落补偿单，退款/废票/取消出库由运营侧任务消化
type CompensationTask struct {
	ID        string           `gorm:"primaryKey;column:id;size:40"`
	OrderSn   string           `gorm:"column:order_sn;size:32;index:idx_order_sn;not null"`
	Kind      CompensationKind `gorm:"column:kind;size:24;not null"`
	Status    int8             `gorm:"column:status;not null;default:0"`
	Remark    string           `gorm:"column:remark;size:255"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (CompensationTask) TableName() string {
	return "compensation_tasks"
}
