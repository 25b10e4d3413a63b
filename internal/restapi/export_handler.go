package restapi

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"econdash/internal/logging"
	"econdash/internal/models"
	"econdash/internal/utils"
)

const exportSheetName = "경제활동"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var exportContentTypes = map[string]string{
	utils.FormatCSV:  "text/csv; charset=utf-8",
	utils.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// exportHandler streams the processed dataset as a download. Nothing is
// written to disk.
func (api *RestAPI) exportHandler(w http.ResponseWriter, r *http.Request) {
	format := utils.ExtractParam(r, "format")
	if err := utils.ValidateExportFormat(format); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"format": {err.Error()}})
		return
	}

	logger := logging.FromContext(r.Context())
	run := api.Pipeline.Run(r.Context())
	if !run.Ready() {
		api.datasetUnavailableResponse(w, r, run.Messages)
		return
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case utils.FormatCSV:
		err = writeCSV(&buf, run.Frame())
	case utils.FormatXLSX:
		err = writeWorkbook(&buf, run.Frame(), logger)
	}
	if err != nil {
		api.serverErrorResponse(w, r, fmt.Errorf("export %s: %w", format, err))
		return
	}

	filename := exportFileName(api.Pipeline.Loader.Path, format)
	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	size := buf.Len()
	if _, err := buf.WriteTo(w); err != nil {
		logging.LogError(logger, "failed to write export", err,
			slog.String("format", format),
			slog.String("component", "export"))
		return
	}

	logging.LogOperation(logger, "dataset_exported",
		slog.String("format", format),
		slog.Int("bytes", size),
		slog.Int("rows", run.Frame().Nrow()),
		slog.String("component", "export"))
}

// exportFileName derives the download name from the dataset file name.
func exportFileName(dataFile, format string) string {
	base := filepath.Base(dataFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_처리결과." + format
}

// writeCSV writes df with a UTF-8 byte order mark so spreadsheet programs
// pick the right encoding for hangul headers.
func writeCSV(w io.Writer, df dataframe.DataFrame) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	return df.WriteCSV(w)
}

func writeWorkbook(w io.Writer, df dataframe.DataFrame, logger *slog.Logger) (err error) {
	f := excelize.NewFile()
	defer logging.HandleDeferredError(&err, f.Close, logger, "close_workbook")

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	names := df.Names()
	header := make([]interface{}, len(names))
	for i, name := range names {
		header[i] = name
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r := 0; r < df.Nrow(); r++ {
		row := make([]interface{}, len(names))
		for c := range names {
			row[c] = models.CellValue(df.Elem(r, c))
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	return f.Write(w)
}
