package main

import (
	"flag"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rasterfit/internal/api"
	"rasterfit/internal/config"
	"rasterfit/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "Config file (yaml, toml or json)")
	flag.String("port", "8080", "Listen port")
	flag.String("api_key", "", "Required X-API-Key value; empty disables the check")
	flag.Parse()

	cfg, err := config.Load(*configPath, config.FlagOverrides(flag.CommandLine, map[string]string{
		"port":    "server.port",
		"api_key": "server.api_key",
	}))
	if err != nil {
		utils.Logger().Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.LogConfigured() {
		l, err := utils.NewLogger(cfg.LogOptions())
		if err != nil {
			utils.Logger().Fatal("Failed to build logger", zap.Error(err))
		}
		utils.SetLogger(l)
	}
	logger := utils.Logger()
	defer logger.Sync()

	if err := cfg.ValidateServer(); err != nil {
		logger.Fatal("Invalid server config", zap.Error(err))
	}

	gin.SetMode(cfg.Server.GinMode)
	r := api.NewServer(cfg, logger).Router()

	logger.Info("Listening", zap.String("port", cfg.Server.Port), zap.Bool("api_key", cfg.Server.APIKey != ""))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
