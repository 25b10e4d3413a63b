package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"econdash/internal/app"
	"econdash/internal/restapi"
	"econdash/internal/webui"
)

func newHandler(application *app.Application) (http.Handler, error) {
	router := httprouter.New()

	api := restapi.NewRestAPI(application)
	api.SetRoutes(router)

	ui, err := webui.NewWebUI(application)
	if err != nil {
		return nil, err
	}
	ui.SetWebUIRoutes(router)

	return api.WithMiddleware(router), nil
}
