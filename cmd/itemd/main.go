package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/stocklab/itemd/internal/clock"
	"github.com/stocklab/itemd/internal/config"
	"github.com/stocklab/itemd/internal/item"
	"github.com/stocklab/itemd/internal/logger"
	"github.com/stocklab/itemd/internal/migration"
	"github.com/stocklab/itemd/internal/server"
	"github.com/stocklab/itemd/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		item.Module,
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
