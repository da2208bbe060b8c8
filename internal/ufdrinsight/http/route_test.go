package http

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufdrinsight/ufdrinsight/internal/sample"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdrinsight/conf"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdrinsight/database"
)

func newTestServer(t *testing.T) *Service {
	t.Helper()
	cfg := &conf.Config{HTTPAddr: "127.0.0.1:0", DataDir: t.TempDir()}
	db, err := database.New(cfg.DBPath())
	require.NoError(t, err)
	svc := NewService(cfg, db)
	t.Cleanup(func() {
		svc.closeIndexes()
		db.Close()
	})
	return svc
}

func uploadArchive(t *testing.T, svc *Service, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("description", "test upload"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	svc.GetRouter().ServeHTTP(w, req)
	return w
}

func get(t *testing.T, svc *Service, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	svc.GetRouter().ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint(t *testing.T) {
	svc := newTestServer(t)
	data, err := sample.Generate(1)
	require.NoError(t, err)

	w := uploadArchive(t, svc, "sample_ufdr.zip", data)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID      string `json:"id"`
		Metrics struct {
			TotalMessages int    `json:"total_messages"`
			SpikeDate     string `json:"spike_date"`
		} `json:"metrics"`
		Risks []struct {
			Flag string `json:"flag"`
		} `json:"risks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Positive(t, resp.Metrics.TotalMessages)
	assert.Equal(t, "2024-02-12", resp.Metrics.SpikeDate)
	assert.NotEmpty(t, resp.Risks)

	// Stored report round-trips byte-for-byte semantics through the store.
	w = get(t, svc, "/api/v1/analysis/"+resp.ID)
	require.Equal(t, http.StatusOK, w.Code)

	// List shows the new analysis.
	w = get(t, svc, "/api/v1/analysis")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
}

func TestAnalyzeEndpoint_BadArchive(t *testing.T) {
	svc := newTestServer(t)
	w := uploadArchive(t, svc, "junk.zip", []byte("not a zip"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpoint_EmptyArchive(t *testing.T) {
	svc := newTestServer(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("nothing here"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	w := uploadArchive(t, svc, "empty.zip", buf.Bytes())
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No messages found in ZIP", resp.Error)
	assert.Contains(t, resp.Errors, "No messages found in ZIP")
}

func TestSearchEndpoint(t *testing.T) {
	svc := newTestServer(t)
	data, err := sample.Generate(1)
	require.NoError(t, err)

	w := uploadArchive(t, svc, "sample_ufdr.zip", data)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = get(t, svc, "/api/v1/analysis/"+resp.ID+"/search?q=confirmed&limit=5")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var search struct {
		Total int `json:"total"`
		Hits  []struct {
			Message struct {
				Body string `json:"body"`
			} `json:"message"`
		} `json:"hits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &search))
	assert.Positive(t, search.Total)
	for _, h := range search.Hits {
		assert.Contains(t, h.Message.Body, "confirmed")
	}
}

func TestSearchEndpoint_UnknownAnalysis(t *testing.T) {
	svc := newTestServer(t)
	w := get(t, svc, "/api/v1/analysis/nope/search?q=x")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	svc := newTestServer(t)
	data, err := sample.Generate(1)
	require.NoError(t, err)

	w := uploadArchive(t, svc, "sample_ufdr.zip", data)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/analysis/"+resp.ID, nil)
	rec := httptest.NewRecorder()
	svc.GetRouter().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	w = get(t, svc, "/api/v1/analysis/"+resp.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
