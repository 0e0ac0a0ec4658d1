package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewOrder,
	NewPoint,
	NewProduct,
	NewUsers,
	NewCompensation,
	NewCart,
)
