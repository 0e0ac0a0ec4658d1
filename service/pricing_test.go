package service

import (
	"Freshgo/config"
	"Freshgo/models"
	"Freshgo/pkg/response"
	"Freshgo/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPricing(fee int64, products ...*models.Product) *PricingService {
	return &PricingService{
		Settlement: &config.Settlement{DeliveryFee: fee},
		Products:   newMemProducts(products...),
	}
}

func TestItemizeMergesDuplicateLines(t *testing.T) {
	svc := newPricing(0, &models.Product{
		ID: 1, ProductName: "白菜", Attribute: models.AttributeGeneral,
		Price: 100, MemberPrice: 90, VipPrice: 80, SvipPrice: 70, Status: 1,
	})

	result, err := svc.Itemize(context.Background(), []types.CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 3},
	}, models.AttributeGeneral)

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, uint32(5), result.Items[0].Quantity)
	assert.Equal(t, int64(500), result.Total)
	assert.Equal(t, int64(400), result.VipTotal)
}

func TestItemizeUnknownProductFailsWhole(t *testing.T) {
	svc := newPricing(60, &models.Product{
		ID: 1, ProductName: "白菜", Attribute: models.AttributeGeneral,
		Price: 100, Status: 1,
	})

	result, err := svc.Itemize(context.Background(), []types.CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	}, models.AttributeGeneral)

	assert.Nil(t, result)
	assert.Equal(t, response.ErrProductNotFound, err)
}

func TestItemizeDeliveryFeeLine(t *testing.T) {
	svc := newPricing(60, &models.Product{
		ID: 1, ProductName: "白菜", Attribute: models.AttributeGeneral,
		Price: 100, MemberPrice: 100, VipPrice: 100, SvipPrice: 100, Status: 1,
	})

	result, err := svc.Itemize(context.Background(), []types.CartLine{
		{ProductID: 1, Quantity: 2},
	}, models.AttributeGeneral)

	require.NoError(t, err)
	// 100 * 2 + 60 运费
	assert.Equal(t, int64(260), result.Total)
	assert.Equal(t, int64(60), result.DeliveryFee)
	require.Len(t, result.Items, 2)
	fee := result.Items[1]
	assert.Equal(t, uint64(0), fee.ProductID)
	assert.Equal(t, uint32(1), fee.Quantity)
	// 运费各档同价
	assert.Equal(t, int64(60), fee.SvipPrice)
	assert.Equal(t, uint32(3), result.TotalQuantity)
}

// 合并数量超上限整单拒绝，uint32 溢出的恶意购物车也走这条路
func TestItemizeRejectsExcessiveQuantity(t *testing.T) {
	svc := newPricing(0, &models.Product{
		ID: 1, ProductName: "白菜", Attribute: models.AttributeGeneral,
		Price: 100, Status: 1,
	})

	result, err := svc.Itemize(context.Background(), []types.CartLine{
		{ProductID: 1, Quantity: 5000},
		{ProductID: 1, Quantity: 5000},
	}, models.AttributeGeneral)

	assert.Nil(t, result)
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 40007, be.Code)

	// 两行相加回绕到小正数也必须被挡下
	result, err = svc.Itemize(context.Background(), []types.CartLine{
		{ProductID: 1, Quantity: 4294967295},
		{ProductID: 1, Quantity: 2},
	}, models.AttributeGeneral)
	assert.Nil(t, result)
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 40007, be.Code)
}

func TestItemizeRejectsMixedAttributes(t *testing.T) {
	svc := newPricing(0,
		&models.Product{ID: 1, ProductName: "白菜", Attribute: models.AttributeGeneral, Price: 100, Status: 1},
		&models.Product{ID: 2, ProductName: "冻虾", Attribute: models.AttributeColdChain, Price: 200, Status: 1},
	)

	_, err := svc.Itemize(context.Background(), []types.CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}, models.AttributeGeneral)

	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 40006, be.Code)
}

func TestPriceForSelectsTier(t *testing.T) {
	i := &types.Itemization{Total: 300, VipTotal: 250, SvipTotal: 200}

	assert.Equal(t, int64(300), i.PriceFor(types.LevelNormal))
	assert.Equal(t, int64(250), i.PriceFor(types.LevelVip))
	assert.Equal(t, int64(200), i.PriceFor(types.LevelSvip))
}
