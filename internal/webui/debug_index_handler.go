package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	webUI.render(w, r, http.StatusOK, "debug_index.html", debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
}

// debugIndexHandler dumps one part of a fresh pipeline run.
func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")
	run := webUI.Pipeline.Run(r.Context())

	var data interface{}
	var title string

	switch dataType {
	case "messages":
		data = run.Messages
		title = "Pipeline - Messages"
	case "schema":
		data = run.Outcome.Schema
		title = "Pipeline - Schema"
	case "outcome":
		data = map[string]interface{}{
			"run_id":   run.ID,
			"ready":    run.Ready(),
			"outcome":  run.OutcomeLabel(),
			"encoding": run.Encoding(),
			"status":   run.Outcome.Status.String(),
			"region":   run.Outcome.Region.String(),
			"rates":    run.Outcome.Rates.String(),
			"replaced": run.Outcome.Replaced,
			"duration": run.Duration.String(),
		}
		title = "Pipeline - Outcome"
	case "frame":
		if run.Ready() {
			data = run.Frame().String()
		} else {
			data = "no dataset"
		}
		title = "Pipeline - Dataset"
	default:
		data = map[string]string{
			"error": "Please use one of the following: messages, schema, outcome, frame.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, r, title, data)
}
