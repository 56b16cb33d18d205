package main

import (
	"harvest_slots/internal/app"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
