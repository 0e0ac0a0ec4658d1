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

type Point struct {
	Config       *config.Config
	PointService service.IPointService
}

func (p *Point) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(p.Config.Jwt.Secret))
	pointGroup := r.Group("/v1/points")
	pointGroup.Use(authorize)
	pointGroup.GET("/balance", context.Wrap(p.Balance))
	pointGroup.GET("/records", context.Wrap(p.GetRecords))
	pointGroup.POST("/checkin", context.Wrap(p.Checkin))

	admin := r.Group("/v1/admin/points")
	admin.Use(authorize, middleware.AdminOnly())
	admin.GET("/cashback-rule", context.Wrap(p.GetCashbackRule))
	admin.PUT("/cashback-rule", context.Wrap(p.UpdateCashbackRule))
}

func (p *Point) Balance(c *gin.Context) error {
	resp, err := p.PointService.Balance(c, context.GetUserID(c))
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (p *Point) GetRecords(c *gin.Context) error {
	cursor, _ := strconv.ParseInt(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	action := c.Query("action") // INCOME / EXPENSE，空值返回全部

	resp, err := p.PointService.ListRecords(c, context.GetUserID(c), action, cursor, limit)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Checkin 每日签到领积分
func (p *Point) Checkin(c *gin.Context) error {
	var req types.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	if err := p.PointService.Checkin(c, context.GetUserID(c), req.Points); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (p *Point) GetCashbackRule(c *gin.Context) error {
	resp, err := p.PointService.GetCashbackRule(c)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (p *Point) UpdateCashbackRule(c *gin.Context) error {
	var req types.UpdateCashbackRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	if err := p.PointService.UpdateCashbackRule(c, req.Value); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
