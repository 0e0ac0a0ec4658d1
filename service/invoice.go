package service

import (
	"Freshgo/config"
	"Freshgo/models"
	"Freshgo/pkg/log"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type IInvoiceService interface {
	Issue(ctx context.Context, order *models.Order, consignee *models.OrderConsignee) error
}

// InvoiceService 开票服务客户端。开票系统按 RelateNo 幂等，重推不会重复开票
type InvoiceService struct {
	Invoice *config.InvoiceConfig
	client  *http.Client
}

var _ IInvoiceService = (*InvoiceService)(nil)

func NewInvoiceService(cfg *config.InvoiceConfig) *InvoiceService {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &InvoiceService{
		Invoice: cfg,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *InvoiceService) Issue(ctx context.Context, order *models.Order, consignee *models.OrderConsignee) error {
	payload := map[string]interface{}{
		"relate_no": order.RelateNo,
		"amount":    order.TotalAmount,
		"title":     consignee.InvoiceTitle,
		"tax_no":    consignee.InvoiceTaxNo,
		"email":     consignee.InvoiceEmail,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Invoice.Endpoint+"/api/invoice/issue", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-App-Key", s.Invoice.AppKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("invoice response %d: %s", resp.StatusCode, body)
	}
	if code := gjson.GetBytes(body, "code").Int(); code != 0 {
		return fmt.Errorf("invoice business error %d: %s", code, gjson.GetBytes(body, "msg").String())
	}

	log.L.Info("invoice issued",
		zap.String("order_sn", order.OrderSn),
		zap.String("relate_no", order.RelateNo),
		zap.String("invoice_no", gjson.GetBytes(body, "data.invoice_no").String()))
	return nil
}
