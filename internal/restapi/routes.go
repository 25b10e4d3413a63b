package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/api/dataset.json", api.datasetHandler)
	router.HandlerFunc(http.MethodGet, "/api/export/:format", api.exportHandler)
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
}
