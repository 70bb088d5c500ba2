package main

import (
	"flag"
	"log"

	"StockDash/internal/di"
	"StockDash/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("initialize app: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}
