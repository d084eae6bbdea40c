package main

import (
	"log"
	"os"

	"github.com/dzmitrysafronau/shop-project/cmd/shop-api/app"
	"github.com/dzmitrysafronau/shop-project/configs"
	"github.com/dzmitrysafronau/shop-project/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	logging.Init(cfg.App.Name, cfg.App.LogFile)

	app, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	log.Printf("shop-api (%s) listening on %s", env, cfg.App.HTTPAddr)
	if err := app.Router.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
