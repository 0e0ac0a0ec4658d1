package config

type RocketMQConfig struct {
	NameServer []string `json:"name_server" yaml:"name_server"`
	Producer   struct {
		Group string `json:"group" yaml:"group"`
	} `json:"producer" yaml:"producer"`
	OrderTopic string `json:"order_topic" yaml:"order_topic"` // 订单状态事件主题
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
