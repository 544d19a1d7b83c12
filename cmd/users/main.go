package main

import (
	"incident-hub/app"

	_ "incident-hub/docs"
)

// @title           Incident Hub - Users Service
// @version         1.0
// @description     Identity-owning service: registration, login, token refresh and user lookups.

// @host      localhost:8081
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.RunUsers()
}
