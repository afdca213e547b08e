package main

import (
	"fxconv/internal/app"

	"github.com/sirupsen/logrus"
)

// @title FX Converter API
// @version 1.0
// @description Daily reference rate table with conversion, cross rate and listing queries.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped")
	}
}
