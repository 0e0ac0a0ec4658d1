package types

import "Freshgo/models"

// MemberLevel 会员等级，决定结算取哪一档价格
type MemberLevel string

const (
	LevelNormal MemberLevel = "NORMAL"
	LevelVip    MemberLevel = "VIP"
	LevelSvip   MemberLevel = "SVIP"
)

type CartLine struct {
	ProductID uint64 `json:"product_id"`
	Quantity  uint32 `json:"quantity" binding:"required,min=1"`
}

// SettlementItem 结算明细行，四档价均为单价；运费行 ProductID 为 0
type SettlementItem struct {
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    uint32 `json:"quantity"`
	Price       int64  `json:"price"`
	MemberPrice int64  `json:"member_price"`
	VipPrice    int64  `json:"vip_price"`
	SvipPrice   int64  `json:"svip_price"`
}

// Itemization 计价结果，各档合计已含运费行
type Itemization struct {
	Items         []SettlementItem `json:"items"`
	Total         int64            `json:"total"`
	MemberTotal   int64            `json:"member_total"`
	VipTotal      int64            `json:"vip_total"`
	SvipTotal     int64            `json:"svip_total"`
	TotalQuantity uint32           `json:"total_quantity"`
	DeliveryFee   int64            `json:"delivery_fee"`
}

// PriceFor 按会员档位取合计
func (i *Itemization) PriceFor(level MemberLevel) int64 {
	switch level {
	case LevelVip:
		return i.VipTotal
	case LevelSvip:
		return i.SvipTotal
	}
	return i.Total
}

type QuoteRequest struct {
	Items      []CartLine            `json:"items" binding:"required,min=1"`
	Attribute  models.OrderAttribute `json:"attribute"`
	UsePoints  int64                 `json:"use_points"` // 申请抵扣的积分
}

// SettlementQuote 结算报价。UsePoints 只做台账扣减，
// 暂不抵减 PaymentPrice，折抵公式待产品定义
type SettlementQuote struct {
	Itemization
	Level        MemberLevel           `json:"level"`
	Attribute    models.OrderAttribute `json:"attribute"`
	PaymentPrice int64                 `json:"payment_price"`
	UsePoints    int64                 `json:"use_points"`
}

type ConsigneeParam struct {
	DeliveryType models.DeliveryType `json:"delivery_type" binding:"required,oneof=HOME STORE"`
	Name         string              `json:"name" binding:"required"`
	Phone        string              `json:"phone" binding:"required"`
	Province     string              `json:"province"`
	City         string              `json:"city"`
	Address      string              `json:"address"`
	ZipCode      string              `json:"zip_code"`
	StoreID      int64               `json:"store_id"`
	InvoiceTitle string              `json:"invoice_title"`
	InvoiceTaxNo string              `json:"invoice_tax_no"`
	InvoiceEmail string              `json:"invoice_email"`
}

type CreateOrderRequest struct {
	Items     []CartLine            `json:"items" binding:"required,min=1"`
	Attribute models.OrderAttribute `json:"attribute"`
	UsePoints int64                 `json:"use_points"`
	Consignee ConsigneeParam        `json:"consignee" binding:"required"`
}

type CreateOrderResponse struct {
	OrderSn      string `json:"order_sn"`
	TradeNo      string `json:"trade_no"`
	PaymentPrice int64  `json:"payment_price"`
}
