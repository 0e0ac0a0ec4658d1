package types

// LogisticsPackage 单个包裹的物流信息
type LogisticsPackage struct {
	LogisticsNo string `json:"logistics_no"` // 仓储出库包裹号
	ExpressNo   string `json:"express_no"`   // 快递单号
}

// LogisticsDetail 仓储侧出库详情的归一化结构
type LogisticsDetail struct {
	OutboundID   string             `json:"outbound_id"`
	OutboundTime string             `json:"outbound_time"`
	DeliveryType string             `json:"delivery_type"` // HOME / STORE
	Packages     []LogisticsPackage `json:"packages"`
}
