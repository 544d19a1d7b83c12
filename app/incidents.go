package app

import (
	"incident-hub/client"
	"incident-hub/config"
	"incident-hub/db"
	"incident-hub/handler"
	"incident-hub/logger"
	"incident-hub/metrics"
	"incident-hub/repository"
	"incident-hub/router"
	"incident-hub/service"
)

// RunIncidents wires and starts the incidents service. It verifies tokens
// with the shared secret on its own, and confirms the subject still exists
// by calling the users service with the caller's forwarded bearer token.
func RunIncidents() {
	logger.Init()
	cfg, err := config.Load(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	metrics.Init()

	database, err := db.Connect(cfg.Incidents.Database)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(cfg.Incidents.Database.MigrateURL(), "db/migrations/incidents"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	authService := service.NewAuthService(cfg.JWT)
	incidentRepo := repository.NewIncidentRepository(database)
	incidentService := service.NewIncidentService(incidentRepo)
	incidentHandler := handler.NewIncidentHandler(incidentService)

	usersClient := client.NewUsersClient(cfg.Services.UsersURL)
	authenticator := handler.NewAuthenticator(authService).WithResolver(usersClient)

	r := router.NewIncidentsRouter(authenticator, incidentHandler)
	serve("incidents-service", cfg.Incidents.Port, r)
}
