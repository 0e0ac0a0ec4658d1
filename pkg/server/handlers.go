package server

import (
	"Freshgo/handler"
)

type Handlers struct {
	Pay        *handler.Pay
	Settlement *handler.Settlement
	Order      *handler.Order
	Points     *handler.Point
	Cart       *handler.Cart
}
