package handler

import (
	"Freshgo/config"
	"Freshgo/middleware"
	"Freshgo/pkg/context"
	"Freshgo/pkg/response"
	"Freshgo/service"
	"Freshgo/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Cart struct {
	Config      *config.Config
	CartService service.ICartService
}

func (h *Cart) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	cart := r.Group("/v1/cart")
	cart.Use(authorize)
	cart.GET("/list", context.Wrap(h.List))
	cart.POST("/set", context.Wrap(h.Set))
	cart.DELETE("/item/:product_id", context.Wrap(h.Remove))
	cart.DELETE("/clear", context.Wrap(h.Clear))
}

func (h *Cart) List(c *gin.Context) error {
	resp, err := h.CartService.List(c, context.GetUserID(c))
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Cart) Set(c *gin.Context) error {
	var req types.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	if err := h.CartService.Set(c, context.GetUserID(c), req.ProductID, req.Quantity); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Cart) Remove(c *gin.Context) error {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		return response.NewError(400, "商品 ID 不合法")
	}

	if err := h.CartService.Remove(c, context.GetUserID(c), productID); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Cart) Clear(c *gin.Context) error {
	if err := h.CartService.Clear(c, context.GetUserID(c)); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
