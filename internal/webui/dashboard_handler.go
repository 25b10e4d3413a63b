package webui

import (
	"log/slog"
	"net/http"
	"sort"

	"econdash/internal/logging"
	"econdash/internal/report"
	"econdash/internal/utils"
)

type dashboardPage struct {
	Title    string
	Messages []report.Message
	Grid     *Grid
	Encoding string
}

type badRequestPage struct {
	Title  string
	Errors []string
}

// dashboardHandler runs the pipeline and renders the banners, followed by
// the grid when the dataset was processed.
func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sortBy := SortSpec{Column: query.Get("sort"), Order: query.Get("order")}

	if fieldErrors := utils.ValidateSortParams(sortBy.Column, sortBy.Order); len(fieldErrors) > 0 {
		webUI.render(w, r, http.StatusBadRequest, "bad_request.html", badRequestPage{
			Title:  PageTitle,
			Errors: flattenFieldErrors(fieldErrors),
		})
		return
	}

	run := webUI.Pipeline.Run(r.Context())
	page := dashboardPage{
		Title:    PageTitle,
		Messages: run.Messages,
		Encoding: run.Encoding(),
	}

	if run.Ready() {
		grid, err := BuildGrid(run.Frame(), sortBy)
		if err != nil {
			logging.LogError(logging.FromContext(r.Context()), "failed to build grid", err,
				slog.String("sort", sortBy.Column),
				slog.String("component", "webui"))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		page.Grid = &grid
	}

	webUI.render(w, r, http.StatusOK, "dashboard.html", page)
}

func flattenFieldErrors(fieldErrors map[string][]string) []string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		for _, msg := range fieldErrors[field] {
			out = append(out, field+": "+msg)
		}
	}
	return out
}
