package main

import (
	"github.com/eppi-vis/dashboard/internal/server"
	"github.com/eppi-vis/dashboard/internal/util"
	"github.com/eppi-vis/dashboard/pkg/logger"
)

func main() {
	util.LoadEnv()

	logger.Init(logger.Options{
		Debug: util.GetEnvBool("DEBUG", false),
	})

	server.Init()
}
