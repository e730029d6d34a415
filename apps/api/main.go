package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/bharatstack/gstbill/internal/clock"
	"github.com/bharatstack/gstbill/internal/config"
	"github.com/bharatstack/gstbill/internal/hsn"
	"github.com/bharatstack/gstbill/internal/invoice"
	"github.com/bharatstack/gstbill/internal/logger"
	"github.com/bharatstack/gstbill/internal/merchant"
	"github.com/bharatstack/gstbill/internal/metrics"
	"github.com/bharatstack/gstbill/internal/migration"
	"github.com/bharatstack/gstbill/internal/providers"
	"github.com/bharatstack/gstbill/internal/ratelimit"
	"github.com/bharatstack/gstbill/internal/sequence"
	"github.com/bharatstack/gstbill/internal/server"
	"github.com/bharatstack/gstbill/internal/warehouse"
	"github.com/bharatstack/gstbill/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		clock.Module,
		metrics.Module,

		merchant.Module,
		warehouse.Module,
		hsn.Module,
		sequence.Module,
		providers.Module,
		ratelimit.Module,
		invoice.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
