package main

import (
	"flag"
	"os"

	"fxdisplay/internal/app"

	"github.com/sirupsen/logrus"
)

// @title FX Display API
// @version 1.0
// @description Currency registry, exchange rates, conversion and display rendering for the dashboard.
// @BasePath /api/v1
func main() {
	configFile := flag.String("config", "config.yaml", "path to the yaml config file")
	flag.Parse()

	if err := app.Run(*configFile); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
