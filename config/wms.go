package config

// WmsConfig 第三方仓储物流配置，只对接普通仓（GENERAL），冷链不在服务范围
type WmsConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AppKey    string `json:"app_key" yaml:"app_key"`
	AppSecret string `json:"app_secret" yaml:"app_secret"`
	TimeoutMs int    `json:"timeout_ms" yaml:"timeout_ms"`
}

func ProvideWmsConfig(cfg *Config) *WmsConfig {
	return cfg.Wms
}

// InvoiceConfig 开票服务配置
type InvoiceConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AppKey    string `json:"app_key" yaml:"app_key"`
	TimeoutMs int    `json:"timeout_ms" yaml:"timeout_ms"`
}

func ProvideInvoiceConfig(cfg *Config) *InvoiceConfig {
	return cfg.Invoice
}

// Settlement 结算相关配置
type Settlement struct {
	DeliveryFee int64 `json:"delivery_fee" yaml:"delivery_fee"` // 固定运费，单位：分
}

func ProvideSettlementConfig(cfg *Config) *Settlement {
	return cfg.Settlement
}
