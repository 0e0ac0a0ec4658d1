package service

import (
	"Freshgo/dao"
	"Freshgo/pkg/rocketmq"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(PricingService), "*"),
	wire.Bind(new(IPricingService), new(*PricingService)),

	wire.Struct(new(MemberService), "*"),
	wire.Bind(new(IMemberService), new(*MemberService)),

	wire.Struct(new(PointService), "*"),
	wire.Bind(new(IPointService), new(*PointService)),

	wire.Struct(new(SettlementService), "*"),
	wire.Bind(new(ISettlementService), new(*SettlementService)),

	wire.Struct(new(OrderService), "*"),
	wire.Bind(new(IOrderService), new(*OrderService)),

	wire.Struct(new(PayService), "*"),
	wire.Bind(new(IPayService), new(*PayService)),

	NewFulfillmentService,
	wire.Bind(new(IFulfillmentService), new(*FulfillmentService)),

	NewInvoiceService,
	wire.Bind(new(IInvoiceService), new(*InvoiceService)),

	wire.Struct(new(CartService), "*"),
	wire.Bind(new(ICartService), new(*CartService)),

	// DAO 到服务端接口的绑定
	wire.Bind(new(ProductReader), new(*dao.Product)),
	wire.Bind(new(UserReader), new(*dao.Users)),
	wire.Bind(new(PointStore), new(*dao.Point)),
	wire.Bind(new(OrderStore), new(*dao.Order)),
	wire.Bind(new(OrderWriter), new(*dao.Order)),
	wire.Bind(new(PayJournal), new(*dao.Order)),
	wire.Bind(new(CompensationStore), new(*dao.Compensation)),
	wire.Bind(new(CartStore), new(*dao.Cart)),

	rocketmq.InitProducer,
	wire.Struct(new(rocketmq.Publisher), "*"),
	wire.Bind(new(EventPublisher), new(*rocketmq.Publisher)),
)
