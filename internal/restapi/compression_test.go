package restapi

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"econdash/internal/logging"
)

func TestCompressionMiddleware(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(strings.Repeat(`{"지역": "전국"}`, 1000)))
	})

	t.Run("compresses response when gzip accepted", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/dataset.json", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		CompressionMiddleware(testHandler).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))

		reader, err := gzip.NewReader(bytes.NewReader(recorder.Body.Bytes()))
		require.NoError(t, err)
		defer func() { _ = reader.Close() }()

		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)

		expected := strings.Repeat(`{"지역": "전국"}`, 1000)
		assert.Equal(t, expected, string(decompressed))
		assert.Less(t, recorder.Body.Len(), len(expected))
	})

	t.Run("does not compress when gzip not accepted", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/dataset.json", nil)
		recorder := httptest.NewRecorder()

		CompressionMiddleware(testHandler).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
		assert.Equal(t, strings.Repeat(`{"지역": "전국"}`, 1000), recorder.Body.String())
	})

	t.Run("handles empty responses", func(t *testing.T) {
		emptyHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		CompressionMiddleware(emptyHandler).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	})
}

func TestCompressionMiddlewareIntegration(t *testing.T) {
	api := createTestApi(t, []byte(sampleCSV))

	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(CompressionMiddleware(router))
	defer server.Close()

	// A request that sets Accept-Encoding itself gets the raw gzip stream back
	req, err := http.NewRequest("GET", server.URL+"/api/dataset.json", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []byte
	if resp.Header.Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(resp.Body)
		require.NoError(t, err)
		defer func() { _ = reader.Close() }()
		body, err = io.ReadAll(reader)
		require.NoError(t, err)
	} else {
		body, err = io.ReadAll(resp.Body)
		require.NoError(t, err)
	}
	assert.Contains(t, string(body), `"code":200`)
}

func TestCompressionConfig(t *testing.T) {
	config := DefaultCompressionConfig()
	assert.Equal(t, 1024, config.MinSize)
	assert.Equal(t, 6, config.Level)
	assert.Equal(t, []string{exportContentTypes["xlsx"]}, config.SkipContentTypes)
}

func TestCompressionSkipsWorkbooks(t *testing.T) {
	body := strings.Repeat("PK workbook bytes ", 200)
	handler := CompressionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(body))
	}))

	tests := []struct {
		name        string
		contentType string
		wantGzip    bool
	}{
		{name: "xlsx", contentType: exportContentTypes["xlsx"], wantGzip: false},
		{name: "csv", contentType: exportContentTypes["csv"], wantGzip: true},
		{name: "json", contentType: "application/json", wantGzip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/?type="+url.QueryEscape(tt.contentType), nil)
			req.Header.Set("Accept-Encoding", "gzip")
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, req)

			if tt.wantGzip {
				assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))
			} else {
				assert.Empty(t, recorder.Header().Get("Content-Encoding"))
				assert.Equal(t, body, recorder.Body.String())
			}
		})
	}
}

func TestExportRoutesCompression(t *testing.T) {
	var csvText strings.Builder
	csvText.WriteString("지역,취업자,실업자,경제활동인구\n")
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&csvText, "지역%d,%d,%d,%d\n", i, 100+i, 5, 105+i)
	}
	server := newTestServer(t, createTestApi(t, []byte(csvText.String())))

	get := func(t *testing.T, path string) (*http.Response, []byte) {
		t.Helper()
		req, err := http.NewRequest("GET", server.URL+path, nil)
		require.NoError(t, err)
		// set explicitly so the client hands back the raw stream
		req.Header.Set("Accept-Encoding", "gzip")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, raw
	}

	t.Run("workbook is sent as is", func(t *testing.T) {
		resp, raw := get(t, "/api/export/xlsx")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("Content-Encoding"))

		f, err := excelize.OpenReader(bytes.NewReader(raw))
		require.NoError(t, err)
		_ = f.Close()
	})

	t.Run("dataset json is compressed", func(t *testing.T) {
		resp, raw := get(t, "/api/dataset.json")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

		reader, err := gzip.NewReader(bytes.NewReader(raw))
		require.NoError(t, err)
		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Contains(t, string(decompressed), `"code":200`)
	})
}

func TestCompressionInvalidConfigFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

	handler := NewCompressionMiddleware(CompressionConfig{MinSize: 0, Level: 42}, logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(strings.Repeat(`{"a":1}`, 500)))
		}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))
	assert.Contains(t, buf.String(), "invalid compression config")
}
