package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cortexhq/embedding-service/internal/api/cors"
	httpHandlers "github.com/cortexhq/embedding-service/internal/api/http"
	"github.com/cortexhq/embedding-service/internal/api/recovery"
	"github.com/cortexhq/embedding-service/internal/api/requestlog"
	"github.com/cortexhq/embedding-service/internal/model"
)

// NewRouter wires all API routes over the shared model handle.
func NewRouter(handle *model.Handle, modelName string) http.Handler {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(requestlog.Middleware)

	healthHandler := httpHandlers.NewHealthHandler(handle)
	embedHandler := httpHandlers.NewEmbedHandler(handle)
	infoHandler := httpHandlers.NewModelInfoHandler(handle, modelName)

	router.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/embed", embedHandler.HandleEmbed).Methods("POST")
	router.HandleFunc("/embed/batch", embedHandler.HandleEmbedBatch).Methods("POST")
	router.HandleFunc("/models/info", infoHandler.HandleModelInfo).Methods("GET")

	// CORS wraps the router so OPTIONS preflight is answered before route
	// matching would 405 it.
	return cors.Middleware(router)
}
