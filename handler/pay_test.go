package handler

import (
	"Freshgo/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 证书文件缺失时构造必须报错，不允许带着空的网关客户端挂进路由
func TestNewPayMissingCerts(t *testing.T) {
	cfg := &config.Config{
		WechatPayConfig: &config.WechatPayConfig{
			MchID:             "1900000001",
			MchPrivateKeyPath: "testdata/no-such-key.pem",
		},
	}

	p, err := NewPay(cfg, nil, nil)

	require.Error(t, err)
	assert.Nil(t, p)
}
