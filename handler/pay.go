package handler

import (
	"Freshgo/config"
	"Freshgo/dao"
	"Freshgo/middleware"
	"Freshgo/models"
	"Freshgo/pkg/context"
	"Freshgo/pkg/log"
	"Freshgo/pkg/response"
	"Freshgo/service"
	"Freshgo/types"
	base "context"
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/core/auth/verifiers"
	"github.com/wechatpay-apiv3/wechatpay-go/core/downloader"
	"github.com/wechatpay-apiv3/wechatpay-go/core/notify"
	"github.com/wechatpay-apiv3/wechatpay-go/core/option"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/jsapi"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Pay struct {
	WechatPayConfig *config.WechatPayConfig
	Config          *config.Config
	PayService      service.IPayService
	Orders          *dao.Order
	wechatClient    *core.Client // 微信支付客户端（复用）
	MchPrivateKey   *rsa.PrivateKey
	MchPublicKey    *rsa.PublicKey
}

func (p *Pay) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(p.Config.Jwt.Secret))
	pay := r.Group("/v1/pay")
	{
		pay.POST("/prepay", authorize, context.Wrap(p.Prepay))
		pay.POST("/notify", context.Wrap(p.PayNotify))              // 支付回调
		pay.GET("/query/:out_trade_no", context.Wrap(p.QueryOrder)) // 查询订单
	}
}

// NewPay 创建支付处理器。证书或客户端初始化失败直接报错，
// 不允许带着空客户端挂到路由上
func NewPay(cfg *config.Config, payService service.IPayService, orders *dao.Order) (*Pay, error) {
	p := &Pay{
		WechatPayConfig: cfg.WechatPayConfig,
		PayService:      payService,
		Orders:          orders,
		Config:          cfg,
	}

	if err := p.initWechatClient(); err != nil {
		return nil, err
	}

	return p, nil
}

// initWechatClient 初始化微信支付客户端（只执行一次）
func (p *Pay) initWechatClient() error {
	mchPrivateKey, err := utils.LoadPrivateKeyWithPath(p.WechatPayConfig.MchPrivateKeyPath)
	if err != nil {
		return fmt.Errorf("加载商户私钥失败: %w", err)
	}
	p.MchPrivateKey = mchPrivateKey

	wechatPayPublicKey, err := utils.LoadPublicKeyWithPath(p.WechatPayConfig.WechatPayPublicKeyPath)
	if err != nil {
		return fmt.Errorf("加载微信支付公钥失败: %w", err)
	}
	p.MchPublicKey = wechatPayPublicKey

	opts := []core.ClientOption{
		option.WithWechatPayAutoAuthCipher(
			p.WechatPayConfig.MchID,
			p.WechatPayConfig.MchCertificateSerialNumber,
			mchPrivateKey,
			p.WechatPayConfig.MchAPIv3Key,
		),
	}

	client, err := core.NewClient(base.Background(), opts...)
	if err != nil {
		log.L.Error("new client failed", zap.Error(err))
		return fmt.Errorf("创建微信支付客户端失败: %w", err)
	}

	p.wechatClient = client
	return nil
}

// Prepay 预支付下单。订单必须先经结算服务落库，
// 这里只按订单里已持久化的应付金额向网关下单，不接受客户端传金额
func (p *Pay) Prepay(c *gin.Context) error {
	ctx := c.Request.Context()

	var req types.PrepayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	userID := context.GetUserID(c)
	order, err := p.Orders.FindScoped(ctx, req.OrderSn, userID, false)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.ErrOrderNotFound
		}
		return err
	}
	if order.Status != models.OrderStatusWaitPayment {
		return response.NewError(40904, "订单当前状态不可支付")
	}

	// 网关侧单号用 trade_no，和内部 order_sn 解耦
	svc := jsapi.JsapiApiService{Client: p.wechatClient}
	prepayReq := jsapi.PrepayRequest{
		Appid:       core.String(p.WechatPayConfig.AppID),
		Mchid:       core.String(p.WechatPayConfig.MchID),
		Description: core.String("freshgo order " + order.OrderSn),
		OutTradeNo:  core.String(order.TradeNo),
		NotifyUrl:   core.String(p.WechatPayConfig.NotifyURL),
		Amount: &jsapi.Amount{
			Total: core.Int64(order.TotalAmount),
		},
		Payer: &jsapi.Payer{
			Openid: core.String(req.OpenID),
		},
	}

	resp, _, err := svc.PrepayWithRequestPayment(ctx, prepayReq)
	if err != nil {
		log.L.Error("微信下单失败", zap.String("order_sn", order.OrderSn), zap.Error(err))
		return response.NewError(500, "下单失败")
	}

	response.Success(c, resp)
	return nil
}

// PayNotify 支付回调处理
func (p *Pay) PayNotify(c *gin.Context) error {
	ctx := c.Request.Context()
	certificateVisitor := downloader.MgrInstance().GetCertificateVisitor(p.WechatPayConfig.MchID)
	handler, err := notify.NewRSANotifyHandler(p.WechatPayConfig.MchAPIv3Key, verifiers.NewSHA256WithRSAVerifier(certificateVisitor))
	if err != nil {
		log.L.Error("创建微信支付回调处理器失败", zap.Error(err))
		return response.NewError(500, err.Error())
	}

	transaction := new(payments.Transaction)
	notifyReq, err := handler.ParseNotifyRequest(ctx, c.Request, transaction)
	if err != nil {
		log.L.Error("微信支付回调验签或解密失败", zap.Error(err))
		return response.NewError(500, err.Error())
	}
	log.L.Info("pay notify", zap.Any("notifyReq", notifyReq), zap.Any("transaction", transaction))

	order, err := p.Orders.FindByTradeNo(ctx, *transaction.OutTradeNo)
	if err != nil {
		// 查不到对应订单，记异常并应答成功让网关停止重试
		log.L.Error("回调交易号无对应订单", zap.String("out_trade_no", *transaction.OutTradeNo), zap.Error(err))
		response.Success(c, notifyReq)
		return nil
	}

	raw, _ := json.Marshal(transaction)
	if transaction.TradeState != nil && *transaction.TradeState == "SUCCESS" {
		err = p.PayService.ProcessPaySuccess(ctx, order.OrderSn, *transaction.TransactionId, raw)
	} else {
		err = p.PayService.ProcessPayFail(ctx, order.OrderSn, raw)
	}
	if err != nil {
		log.L.Error("处理订单回调业务失败", zap.Error(err))
		return response.NewError(500, "process failed")
	}

	response.Success(c, notifyReq)
	return nil
}

// QueryOrder 查询订单
func (p *Pay) QueryOrder(c *gin.Context) error {
	ctx := c.Request.Context()
	outTradeNo := c.Param("out_trade_no")
	if outTradeNo == "" {
		return response.NewError(400, "订单号不能为空")
	}
	svc := jsapi.JsapiApiService{Client: p.wechatClient}
	resp, result, err := svc.QueryOrderByOutTradeNo(ctx,
		jsapi.QueryOrderByOutTradeNoRequest{
			OutTradeNo: core.String(outTradeNo),
			Mchid:      core.String(p.WechatPayConfig.MchID),
		},
	)
	if err != nil {
		log.L.Error("查询订单失败",
			zap.String("out_trade_no", outTradeNo),
			zap.Error(err))
		return response.NewError(500, "查询订单失败")
	}
	log.L.Info("查询订单成功",
		zap.String("out_trade_no", outTradeNo),
		zap.Int("status", result.Response.StatusCode))
	response.Success(c, resp)
	return nil
}
