package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"employee-management-backend/config"
	"employee-management-backend/internal/logger"
	"employee-management-backend/internal/routes"
)

func main() {
	configFile := flag.String("config", config.GetEnv("CONFIG_FILE", ""), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	logger.Init(cfg.Logging)

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}

	app := routes.NewApp(routes.NewDeps(db, cfg))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.WithField("addr", addr).Info("server listening")
	if err = app.Listen(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
