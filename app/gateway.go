package app

import (
	"incident-hub/client"
	"incident-hub/config"
	"incident-hub/handler"
	"incident-hub/logger"
	"incident-hub/metrics"
	"incident-hub/router"
	"incident-hub/service"
)

// RunGateway wires and starts the BFF gateway. It owns no storage and no
// secret: it forwards the caller's bearer token to the downstream services
// and aggregates their responses.
func RunGateway() {
	logger.Init()
	cfg, err := config.Load(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	metrics.Init()

	incidentsClient := client.NewIncidentsClient(cfg.Services.IncidentsURL)
	usersClient := client.NewUsersClient(cfg.Services.UsersURL)

	gatewayService := service.NewGatewayService(incidentsClient, usersClient)
	gatewayHandler := handler.NewGatewayHandler(gatewayService)

	r := router.NewGatewayRouter(gatewayHandler)
	serve("gateway", cfg.Gateway.Port, r)
}
