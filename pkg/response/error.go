package response

import (
	"github.com/gin-gonic/gin"
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// 业务固定错误码，订单归属错误统一返回 404，不向非本人泄露订单是否存在
var (
	ErrOrderNotFound       = NewError(40401, "订单不存在")
	ErrProductNotFound     = NewError(40001, "商品不存在或已下架")
	ErrInsufficientPoints  = NewError(40002, "积分余额不足")
	ErrInsufficientStock   = NewError(40003, "商品库存不足")
	ErrOrderNotCancellable = NewError(40901, "订单当前状态不可取消")
	ErrOrderCompleted      = NewError(40902, "订单已完成，请联系客服处理")
)

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
