package main

import (
	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/di"
	"github.com/lovedesignwork/skyrock-sub001/shared/logger"
)

// @title Skyrock Booking API
// @version 1.0
// @description Booking and payment backend for the Skyrock adventure park.
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
