package restapi

import (
	"log/slog"
	"net/http"

	"econdash/internal/logging"
	"econdash/internal/models"
)

// datasetHandler runs the pipeline and returns the processed dataset as JSON.
func (api *RestAPI) datasetHandler(w http.ResponseWriter, r *http.Request) {
	run := api.Pipeline.Run(r.Context())
	if !run.Ready() {
		api.datasetUnavailableResponse(w, r, run.Messages)
		return
	}

	entry := models.NewDatasetEntry(run.Frame(), run.Messages, run.Encoding())
	logging.FromContext(r.Context()).Debug("dataset_served",
		slog.Int("rows", len(entry.Rows)),
		slog.String("encoding", entry.Encoding),
		slog.String("component", "restapi"))
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
