package api

import (
	_ "fxconv/docs"
	"fxconv/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1/rates", func(r chi.Router) {
		r.Get("/", rateHandler.GetRates)
		r.Get("/convert", rateHandler.Convert)
		r.Get("/cross/{from:[A-Za-z]{3}}/{to:[A-Za-z]{3}}", rateHandler.GetCrossRate)
		r.Get("/currencies", rateHandler.GetCurrencies)
		r.Get("/base", rateHandler.GetBase)
		r.Put("/base", rateHandler.SetBase)
		r.Get("/table", rateHandler.GetTable)
		r.Post("/refresh", rateHandler.Refresh)
	})
	return router
}
