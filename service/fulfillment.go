package service

import (
	"Freshgo/config"
	"Freshgo/models"
	"Freshgo/pkg/log"
	"Freshgo/types"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type IFulfillmentService interface {
	CreateOutbound(ctx context.Context, order *models.Order, consignee *models.OrderConsignee, items []*models.OrderItem) error
	LogisticsDetail(ctx context.Context, orderSn string) (*types.LogisticsDetail, error)
}

// FulfillmentService 对接第三方仓储。只处理常温单，冷链仓不在服务范围。
// 仓储接口不稳定，统一挂熔断器并限定超时，失败只记异常不影响订单主流程
type FulfillmentService struct {
	Wms     *config.WmsConfig
	Redis   *redis.Client
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

var _ IFulfillmentService = (*FulfillmentService)(nil)

func NewFulfillmentService(cfg *config.WmsConfig, rdb *redis.Client) *FulfillmentService {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &FulfillmentService{
		Wms:    cfg,
		Redis:  rdb,
		client: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name: "wms",
		}),
	}
}

// CreateOutbound 推送出库单。幂等键用订单号，
// 仓储侧对重复单号直接返回既有出库单，重试不会重复建单
func (f *FulfillmentService) CreateOutbound(ctx context.Context, order *models.Order, consignee *models.OrderConsignee, items []*models.OrderItem) error {
	if order.Attribute != models.AttributeGeneral {
		return nil
	}

	lines := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if item.IsDeliveryFee() {
			// 运费虚拟行不推仓储
			continue
		}
		lines = append(lines, map[string]interface{}{
			"product_id": item.ProductID,
			"name":       item.ProductName,
			"quantity":   item.Quantity,
		})
	}

	payload := map[string]interface{}{
		"idempotency_key": order.OrderSn,
		"order_sn":        order.OrderSn,
		"delivery_type":   consignee.DeliveryType,
		"consignee": map[string]interface{}{
			"name":     consignee.Name,
			"phone":    consignee.Phone,
			"province": consignee.Province,
			"city":     consignee.City,
			"address":  consignee.Address,
			"zip_code": consignee.ZipCode,
			"store_id": consignee.StoreID,
		},
		"items": lines,
	}

	body, err := f.post(ctx, "/api/outbound/create", payload)
	if err != nil {
		return err
	}

	outboundID := gjson.GetBytes(body, "data.outbound_id").String()
	log.L.Info("outbound order created",
		zap.String("order_sn", order.OrderSn),
		zap.String("outbound_id", outboundID))
	return nil
}

// LogisticsDetail 出库详情查询，redis 短缓存挡住前端轮询
func (f *FulfillmentService) LogisticsDetail(ctx context.Context, orderSn string) (*types.LogisticsDetail, error) {
	cacheKey := "freshgo:logistics:" + orderSn
	if cached, err := f.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
		var detail types.LogisticsDetail
		if json.Unmarshal(cached, &detail) == nil {
			return &detail, nil
		}
	}

	body, err := f.get(ctx, "/api/outbound/detail?order_sn="+orderSn)
	if err != nil {
		return nil, err
	}

	detail := parseLogisticsDetail(body)

	if raw, err := json.Marshal(detail); err == nil {
		f.Redis.Set(ctx, cacheKey, raw, 30*time.Second)
	}
	return detail, nil
}

// parseLogisticsDetail 仓储返回的归一化，字段缺失按空值处理
func parseLogisticsDetail(body []byte) *types.LogisticsDetail {
	data := gjson.GetBytes(body, "data")
	detail := &types.LogisticsDetail{
		OutboundID:   data.Get("outbound_id").String(),
		OutboundTime: data.Get("outbound_time").String(),
		DeliveryType: data.Get("delivery_type").String(),
	}
	for _, pkg := range data.Get("packages").Array() {
		detail.Packages = append(detail.Packages, types.LogisticsPackage{
			LogisticsNo: pkg.Get("logistics_no").String(),
			ExpressNo:   pkg.Get("express_no").String(),
		})
	}
	return detail
}

func (f *FulfillmentService) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return f.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Wms.Endpoint+path, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-App-Key", f.Wms.AppKey)
		return f.do(req)
	})
}

func (f *FulfillmentService) get(ctx context.Context, path string) ([]byte, error) {
	return f.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Wms.Endpoint+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-App-Key", f.Wms.AppKey)
		return f.do(req)
	})
}

func (f *FulfillmentService) do(req *http.Request) ([]byte, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wms response %d: %s", resp.StatusCode, body)
	}
	if code := gjson.GetBytes(body, "code").Int(); code != 0 {
		return nil, fmt.Errorf("wms business error %d: %s", code, gjson.GetBytes(body, "msg").String())
	}
	return body, nil
}
