package internal

import (
	"net/http"

	"nutrilog/internal/controllers"
	"nutrilog/internal/providers"
)

func InitRoutes(journalController *controllers.JournalController, relayController *controllers.RelayController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/api/parse-meal", http.HandlerFunc(relayController.ParseMeal))
	routers.Get("/api/entries", http.HandlerFunc(journalController.List))
	routers.Post("/api/entries", http.HandlerFunc(journalController.Submit))
	routers.Delete("/api/entries", http.HandlerFunc(journalController.Delete))
	routers.Get("/api/totals", http.HandlerFunc(journalController.Totals))
	routers.Get("/api/dashboard", http.HandlerFunc(journalController.Dashboard))
	routers.Get("/api/theme", http.HandlerFunc(journalController.GetTheme))
	routers.Post("/api/theme", http.HandlerFunc(journalController.SetTheme))
	return routers
}
