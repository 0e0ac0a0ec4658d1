package context

import (
	"Freshgo/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				c.JSON(http.StatusOK, response.Response{
					Code: be.Code,
					Msg:  be.Msg,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: 500,
				Msg:  err.Error(),
			})
		}
	}
}

// GetUserID 取当前登录用户 ID，鉴权中间件保证已写入，缺失时返回 0
func GetUserID(c *gin.Context) int64 {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0
	}

	uid, ok := v.(int64)
	if !ok {
		return 0
	}

	return uid
}

// GetRole 取当前请求方角色，缺省按普通用户处理
func GetRole(c *gin.Context) string {
	v, ok := c.Get(CtxRole)
	if !ok {
		return RoleUser
	}
	role, ok := v.(string)
	if !ok {
		return RoleUser
	}
	return role
}

func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == RoleAdmin
}
