package handler

import (
	"Freshgo/config"
	"Freshgo/middleware"
	"Freshgo/pkg/context"
	"Freshgo/pkg/response"
	"Freshgo/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Order struct {
	Config             *config.Config
	OrderService       service.IOrderService
	FulfillmentService service.IFulfillmentService
}

func (o *Order) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(o.Config.Jwt.Secret))
	order := r.Group("/v1/order")
	order.Use(authorize)
	order.GET("/list", context.Wrap(o.GetOrder))
	order.GET("/detail/:order_sn", context.Wrap(o.Detail))
	order.POST("/cancel/:order_sn", context.Wrap(o.Cancel))
	order.GET("/logistics/:order_sn", context.Wrap(o.Logistics))

	admin := r.Group("/v1/admin/order")
	admin.Use(authorize, middleware.AdminOnly())
	admin.POST("/complete/:order_sn", context.Wrap(o.Complete))
	admin.GET("/compensations", context.Wrap(o.PendingCompensations))
	admin.POST("/compensations/:id/done", context.Wrap(o.ResolveCompensation))
}

func (o *Order) GetOrder(c *gin.Context) error {
	userID := context.GetUserID(c)
	cursor, _ := strconv.ParseInt(c.Query("cursor"), 10, 64)
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	resp, err := o.OrderService.GetOrderList(c, userID, cursor, pageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (o *Order) Detail(c *gin.Context) error {
	resp, err := o.OrderService.Detail(c, context.GetUserID(c), context.GetRole(c), c.Param("order_sn"))
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (o *Order) Cancel(c *gin.Context) error {
	err := o.OrderService.Cancel(c, context.GetUserID(c), context.GetRole(c), c.Param("order_sn"))
	if err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

// Logistics 物流轨迹查询，先校验订单归属再查仓储侧
func (o *Order) Logistics(c *gin.Context) error {
	orderSn := c.Param("order_sn")
	if _, err := o.OrderService.Detail(c, context.GetUserID(c), context.GetRole(c), orderSn); err != nil {
		return err
	}
	resp, err := o.FulfillmentService.LogisticsDetail(c, orderSn)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Complete 收货确认，目前由运营后台代为触发
func (o *Order) Complete(c *gin.Context) error {
	if err := o.OrderService.Complete(c, c.Param("order_sn")); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

// PendingCompensations 待处理的撤单补偿任务
func (o *Order) PendingCompensations(c *gin.Context) error {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	tasks, err := o.OrderService.PendingCompensations(c, limit)
	if err != nil {
		return err
	}
	response.Success(c, tasks)
	return nil
}

// ResolveCompensation 补偿任务销账
func (o *Order) ResolveCompensation(c *gin.Context) error {
	if err := o.OrderService.ResolveCompensation(c, c.Param("id")); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
