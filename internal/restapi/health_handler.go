package restapi

import (
	"encoding/json"
	"net/http"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"env":    api.Config.Env.String(),
	})
	if err != nil {
		api.serverErrorResponse(w, r, err)
	}
}
