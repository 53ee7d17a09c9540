package main

import (
	"context"
	"os"

	"github.com/finledger/finledger/internal/app"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func init() {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	// "finledger menu" runs the interactive controller instead of the server.
	if len(os.Args) > 1 && os.Args[1] == "menu" {
		if err := application.RunMenu(context.Background()); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
