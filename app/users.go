package app

import (
	"incident-hub/config"
	"incident-hub/db"
	"incident-hub/handler"
	"incident-hub/logger"
	"incident-hub/metrics"
	"incident-hub/repository"
	"incident-hub/router"
	"incident-hub/service"
)

// RunUsers wires and starts the users service: the identity owner that
// registers users, verifies credentials and issues tokens.
func RunUsers() {
	logger.Init()
	cfg, err := config.Load(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	metrics.Init()

	database, err := db.Connect(cfg.Users.Database)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(cfg.Users.Database.MigrateURL(), "db/migrations/users"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis(cfg.Redis)
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	authService := service.NewAuthService(cfg.JWT)
	userRepo := repository.NewUserRepository(database)
	userService := service.NewUserService(userRepo, authService, redisClient)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(userService)

	// The gate re-resolves the subject against the local store, so tokens of
	// deleted users are rejected even before their natural expiry.
	authenticator := handler.NewAuthenticator(authService).WithResolver(userService)

	r := router.NewUsersRouter(authenticator, userHandler, authHandler)
	serve("users-service", cfg.Users.Port, r)
}
