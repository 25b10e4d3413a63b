package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"econdash/internal/app"
	"econdash/internal/appconf"
	"econdash/internal/ingest"
	"econdash/internal/logging"
)

const sampleCSV = "지역,취업자,실업자,경제활동인구\n계,50,5,55\n서울,30,3,33\n"

func testLogger() *slog.Logger {
	return logging.NewStructuredLogger(io.Discard, slog.LevelError)
}

// createTestApi builds a RestAPI over a temporary dataset holding content.
// A nil content leaves the dataset file missing.
func createTestApi(t *testing.T, content []byte) *RestAPI {
	t.Helper()
	path := filepath.Join(t.TempDir(), ingest.DefaultFileName)
	if content != nil {
		require.NoError(t, os.WriteFile(path, content, 0o600))
	}

	cfg := appconf.Config{
		Env:       appconf.EnvFlagToEnvironment("test"),
		DataFile:  path,
		RateLimit: 100,
	}
	return NewRestAPI(app.New(cfg, testLogger()))
}

func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(api.WithMiddleware(router))
	t.Cleanup(server.Close)
	return server
}

// serveApiAndRetrieveEndpoint requests endpoint and decodes the JSON body
// into a generic map.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, map[string]interface{}) {
	t.Helper()
	server := newTestServer(t, api)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body, testLogger(), "http_response_body")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return resp, body
}

func getBody(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()
	server := newTestServer(t, api)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body, testLogger(), "http_response_body")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}
