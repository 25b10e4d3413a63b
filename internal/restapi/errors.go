package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"econdash/internal/logging"
	"econdash/internal/models"
	"econdash/internal/report"
)

// errorResponse is the envelope used for failures. Version stays 1 for
// failures, matching the rate limiter's and the validator's responses.
type errorResponse struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data,omitempty"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

func (api *RestAPI) writeError(w http.ResponseWriter, r *http.Request, code int, text string, data interface{}) {
	response := errorResponse{
		Code:        code,
		CurrentTime: models.ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     1,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode error response", err,
			slog.String("path", r.URL.Path))
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "internal server error", err,
		slog.String("path", r.URL.Path))
	api.writeError(w, r, http.StatusInternalServerError, "internal server error", nil)
}

// datasetUnavailableResponse is sent when ingestion or processing failed. The
// banners of the run are kept so API clients see the same explanation the
// page shows.
func (api *RestAPI) datasetUnavailableResponse(w http.ResponseWriter, r *http.Request, messages []report.Message) {
	api.writeError(w, r, http.StatusServiceUnavailable, "dataset unavailable",
		map[string]interface{}{"entry": models.NewEmptyDatasetEntry(messages)})
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode validation error response", err,
			slog.String("path", r.URL.Path))
	}
}
