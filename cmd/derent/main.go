package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/derent/internal/clock"
	"github.com/smallbiznis/derent/internal/config"
	"github.com/smallbiznis/derent/internal/logger"
	"github.com/smallbiznis/derent/internal/migration"
	"github.com/smallbiznis/derent/internal/server"
	"github.com/smallbiznis/derent/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface; server.Module pulls in the domain modules.
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
