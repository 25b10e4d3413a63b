package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"econdash/internal/appconf"
)

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.dashboardHandler)
	if webUI.Config.Env != appconf.Production {
		router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
	}
}
