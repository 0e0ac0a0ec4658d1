package utils

import (
	"Freshgo/pkg/snowflake"
	"fmt"
	"time"

	"github.com/speps/go-hashids/v2"
)

var relateHash *hashids.HashID

func init() {
	hd := hashids.NewData()
	hd.Salt = "freshgo-invoice"
	hd.MinLength = 12
	relateHash, _ = hashids.NewWithData(hd)
}

// GenerateOrderSn 生成业务订单号，雪花 ID 保证全局唯一且不连续，
// 可直接作为商户订单号交给支付网关
func GenerateOrderSn(userID int64) string {
	return fmt.Sprintf("FG%d%02d", snowflake.GenOrderID(), userID%100)
}

// GenerateTradeNo 网关侧交易号
func GenerateTradeNo(prefix string, orderID int64) string {
	// 时间精确到秒
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%d", prefix, now, orderID)
}

// GenerateRelateNo 发票关联号，开票系统对单号格式有长度限制，用 hashids 压短
func GenerateRelateNo(orderID int64) string {
	no, err := relateHash.EncodeInt64([]int64{orderID})
	if err != nil {
		return fmt.Sprintf("INV%d", orderID)
	}
	return no
}
