package service

import (
	"Freshgo/config"
	"Freshgo/models"
	"Freshgo/pkg/context"
	"Freshgo/pkg/response"
	"Freshgo/types"
	base "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settlementFixture struct {
	svc    *SettlementService
	points *memPointStore
	writer *memOrderWriter
}

func newSettlementFixture(user *models.Users, products ...*models.Product) *settlementFixture {
	points := newMemPointStore()
	writer := &memOrderWriter{points: points}
	users := newMemUsers(user)
	svc := &SettlementService{
		Pricing: &PricingService{
			Settlement: &config.Settlement{DeliveryFee: 60},
			Products:   newMemProducts(products...),
		},
		Member: &MemberService{Users: users},
		Points: &PointService{Store: points, Users: users},
		Orders: writer,
	}
	return &settlementFixture{svc: svc, points: points, writer: writer}
}

func cabbage() *models.Product {
	return &models.Product{
		ID: 1, ProductName: "白菜", Attribute: models.AttributeGeneral,
		Price: 100, MemberPrice: 95, VipPrice: 90, SvipPrice: 80, Status: 1,
	}
}

func TestQuoteNormalLevel(t *testing.T) {
	f := newSettlementFixture(&models.Users{ID: 7}, cabbage())

	quote, err := f.svc.Quote(base.Background(), 7, &types.QuoteRequest{
		Items: []types.CartLine{{ProductID: 1, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, types.LevelNormal, quote.Level)
	assert.Equal(t, int64(260), quote.PaymentPrice)
	assert.Equal(t, models.AttributeGeneral, quote.Attribute)
}

func TestQuoteSvipLevelPrice(t *testing.T) {
	f := newSettlementFixture(&models.Users{
		ID: 7, SvipActivated: true, FollowFacebook: true, FollowYoutube: true,
	}, cabbage())

	quote, err := f.svc.Quote(base.Background(), 7, &types.QuoteRequest{
		Items: []types.CartLine{{ProductID: 1, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, types.LevelSvip, quote.Level)
	// 80 * 2 + 60 运费
	assert.Equal(t, int64(220), quote.PaymentPrice)
}

func TestQuoteRedemptionExceedsBalance(t *testing.T) {
	f := newSettlementFixture(&models.Users{ID: 7}, cabbage())
	f.points.seedBalance(7, 50)

	_, err := f.svc.Quote(base.Background(), 7, &types.QuoteRequest{
		Items:     []types.CartLine{{ProductID: 1, Quantity: 2}},
		UsePoints: 60,
	})

	assert.Equal(t, response.ErrInsufficientPoints, err)
}

// 抵扣只做台账扣减，不改应付金额
func TestQuoteRedemptionDoesNotDiscount(t *testing.T) {
	f := newSettlementFixture(&models.Users{ID: 7}, cabbage())
	f.points.seedBalance(7, 50)

	quote, err := f.svc.Quote(base.Background(), 7, &types.QuoteRequest{
		Items:     []types.CartLine{{ProductID: 1, Quantity: 2}},
		UsePoints: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(260), quote.PaymentPrice)
	assert.Equal(t, int64(30), quote.UsePoints)
	// 试算不动账
	account, _ := f.points.GetAccount(base.Background(), 7)
	assert.Equal(t, int64(50), account.Balance)
}

func TestCreateOrderPersistsAggregate(t *testing.T) {
	f := newSettlementFixture(&models.Users{ID: 7}, cabbage())

	resp, err := f.svc.CreateOrder(base.Background(), 7, &types.CreateOrderRequest{
		Items: []types.CartLine{{ProductID: 1, Quantity: 2}},
		Consignee: types.ConsigneeParam{
			DeliveryType: models.DeliveryHome,
			Name:         "张三",
			Phone:        "13800000000",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(260), resp.PaymentPrice)

	order := f.writer.created
	require.NotNil(t, order)
	assert.Equal(t, models.OrderStatusWaitPayment, order.Status)
	// 三个单号独立且都已生成
	assert.NotEmpty(t, order.OrderSn)
	assert.NotEmpty(t, order.TradeNo)
	assert.NotEmpty(t, order.RelateNo)
	assert.NotEqual(t, order.OrderSn, order.TradeNo)
	assert.NotEqual(t, order.TradeNo, order.RelateNo)

	// 明细含运费虚拟行，单价按下单人档位快照
	require.Len(t, f.writer.items, 2)
	assert.Equal(t, int64(100), f.writer.items[0].UnitPrice)
	assert.Equal(t, int64(200), f.writer.items[0].Subtotal)
	assert.True(t, f.writer.items[1].IsDeliveryFee())
}

func TestCreateOrderNumbersAreUnique(t *testing.T) {
	f := newSettlementFixture(&models.Users{ID: 7}, cabbage())
	req := &types.CreateOrderRequest{
		Items:     []types.CartLine{{ProductID: 1, Quantity: 1}},
		Consignee: types.ConsigneeParam{DeliveryType: models.DeliveryHome, Name: "张三", Phone: "138"},
	}

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		resp, err := f.svc.CreateOrder(base.Background(), 7, req)
		require.NoError(t, err)
		require.False(t, seen[resp.OrderSn], "duplicate order sn %s", resp.OrderSn)
		require.False(t, seen[resp.TradeNo], "duplicate trade no %s", resp.TradeNo)
		seen[resp.OrderSn] = true
		seen[resp.TradeNo] = true
	}
}

// 下单抵扣 30 分，取消后余额回到 50
func TestCreateOrderRedeemThenCancelRestores(t *testing.T) {
	f := newSettlementFixture(&models.Users{ID: 7}, cabbage())
	f.points.seedBalance(7, 50)

	resp, err := f.svc.CreateOrder(base.Background(), 7, &types.CreateOrderRequest{
		Items:     []types.CartLine{{ProductID: 1, Quantity: 2}},
		UsePoints: 30,
		Consignee: types.ConsigneeParam{DeliveryType: models.DeliveryHome, Name: "张三", Phone: "138"},
	})
	require.NoError(t, err)

	account, _ := f.points.GetAccount(base.Background(), 7)
	assert.Equal(t, int64(20), account.Balance)

	order := f.writer.created
	require.NotNil(t, order.RedeemLogID)

	orderStore := newMemOrderStore(order)
	orderStore.points = f.points
	orderSvc := &OrderService{
		Orders:        orderStore,
		Compensations: &memCompensations{},
	}
	require.NoError(t, orderSvc.Cancel(base.Background(), 7, context.RoleUser, resp.OrderSn))

	account, _ = f.points.GetAccount(base.Background(), 7)
	assert.Equal(t, int64(50), account.Balance)
}

// 报价通过后余额被并发用掉，落库时整体失败
func TestCreateOrderRedeemRacesAway(t *testing.T) {
	f := newSettlementFixture(&models.Users{ID: 7}, cabbage())
	f.points.seedBalance(7, 50)

	// 报价和落库之间余额被另一笔抵扣用掉
	f.writer.beforeCreate = func() {
		_, err := f.points.ApplyRedeem(base.Background(), 7, 30, "other-order")
		require.NoError(t, err)
	}

	_, err := f.svc.CreateOrder(base.Background(), 7, &types.CreateOrderRequest{
		Items:     []types.CartLine{{ProductID: 1, Quantity: 2}},
		UsePoints: 30,
		Consignee: types.ConsigneeParam{DeliveryType: models.DeliveryHome, Name: "张三", Phone: "138"},
	})

	assert.Equal(t, response.ErrInsufficientPoints, err)
}
