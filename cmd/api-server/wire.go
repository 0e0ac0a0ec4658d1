//go:build wireinject
// +build wireinject

package main

import (
	"Freshgo/config"
	"Freshgo/dao"
	"Freshgo/handler"
	"Freshgo/pkg/client"
	"Freshgo/pkg/database"
	"Freshgo/pkg/server"
	"Freshgo/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(

		client.NewRedisClient,
		config.ProvideRocketMQConfig,
		config.ProvideWmsConfig,
		config.ProvideInvoiceConfig,
		config.ProvideSettlementConfig,
		server.NewGinEngine,
		wire.Struct(new(handler.Settlement), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.Point), "*"),
		wire.Struct(new(handler.Cart), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		handler.NewPay,
		database.NewDB,
	)
	return nil, nil
}
