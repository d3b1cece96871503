package router

import (
	"net/http"

	"github.com/senyabanana/records-browser/internal/handlers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// InitRoutes регистрирует маршруты. JSON API оборачивается в CORS.
func InitRoutes(recordsHandler *handlers.RecordsHandler, browserHandler *handlers.BrowserHandler, allowedOrigins []string) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/api/ping", handlers.PingHandler)
	api.HandleFunc("/api/records", recordsHandler.GetRecords)
	api.HandleFunc("GET /api/session", browserHandler.State)
	api.HandleFunc("/api/session/commands", browserHandler.Command)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", c.Handler(api))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/{$}", browserHandler.Page)

	return mux
}
