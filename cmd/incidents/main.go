package main

import (
	"incident-hub/app"
)

func main() {
	app.RunIncidents()
}
