package handler

import (
	"Freshgo/config"
	"Freshgo/middleware"
	"Freshgo/pkg/context"
	"Freshgo/pkg/response"
	"Freshgo/service"
	"Freshgo/types"

	"github.com/gin-gonic/gin"
)

type Settlement struct {
	Config            *config.Config
	SettlementService service.ISettlementService
}

func (s *Settlement) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(s.Config.Jwt.Secret))
	settle := r.Group("/v1/settlement")
	settle.Use(authorize)
	settle.POST("/quote", context.Wrap(s.Quote))
	settle.POST("/order", context.Wrap(s.CreateOrder))
}

// Quote 结算试算，不落库
func (s *Settlement) Quote(c *gin.Context) error {
	var req types.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	resp, err := s.SettlementService.Quote(c, context.GetUserID(c), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// CreateOrder 正式下单，金额由服务端重新计算
func (s *Settlement) CreateOrder(c *gin.Context) error {
	var req types.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	resp, err := s.SettlementService.CreateOrder(c, context.GetUserID(c), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
