package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/osint-lab/casetrail/pkg/controller/http"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/repository"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/usecase"
)

func newServer(t *testing.T) *httpctrl.Server {
	t.Helper()
	adapter := kv.NewAdapter(kv.NewMemory())
	repo := repository.New(adapter)
	return httpctrl.New(usecase.New(repo, adapter))
}

func doJSON(t *testing.T, srv *httpctrl.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestCaseLifecycle(t *testing.T) {
	srv := newServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/cases", map[string]any{
		"name":     "Test Case",
		"priority": "high",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created model.Case
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.Value(t, created.Name).Equal("Test Case")

	caseURL := "/api/cases/" + created.ID.String()

	rec = doJSON(t, srv, http.MethodGet, caseURL, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodPatch, caseURL, map[string]any{"description": "updated"})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodGet, "/api/cases", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var cases []model.Case
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cases)).Required()
	gt.Array(t, cases).Length(1)

	rec = doJSON(t, srv, http.MethodDelete, caseURL, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodGet, caseURL, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestActivePointer(t *testing.T) {
	srv := newServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/cases/active", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodPost, "/api/cases", map[string]any{"name": "A"})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var created model.Case
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()

	rec = doJSON(t, srv, http.MethodPut, "/api/cases/active", map[string]any{"caseId": created.ID.String()})
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodGet, "/api/cases/active", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodPut, "/api/cases/active", map[string]any{"caseId": "case-missing"})
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestMutatorsAndExport(t *testing.T) {
	srv := newServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/cases", map[string]any{"name": "Test Case"})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var created model.Case
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	caseURL := "/api/cases/" + created.ID.String()

	rec = doJSON(t, srv, http.MethodPost, caseURL+"/findings", map[string]any{
		"title":      "Leaked email",
		"content":    "Found on breach site",
		"importance": "high",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, srv, http.MethodPut, caseURL+"/tools/email-0", map[string]any{"status": "useful"})
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodPut, caseURL+"/tools/email-0", map[string]any{"status": "bogus-status"})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = doJSON(t, srv, http.MethodPost, caseURL+"/searches", map[string]any{
		"values": map[string]string{"email": "a@b.com"},
		"links": []map[string]string{
			{"id": "x", "name": "Tool1", "url": "http://t", "badge": "free", "category": "Email"},
		},
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, srv, http.MethodGet, caseURL+"/export/markdown", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Header().Get("Content-Type")).Equal("text/markdown")
	gt.Bool(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="test-case-`)).True()
	gt.String(t, rec.Body.String()).Contains("### High Priority")

	rec = doJSON(t, srv, http.MethodGet, caseURL+"/export/pdf", nil)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = doJSON(t, srv, http.MethodGet, "/api/history", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var history []usecase.HistoryEntry
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history)).Required()
	gt.Array(t, history).Length(1)
}

func TestImportEndpoint(t *testing.T) {
	srv := newServer(t)

	body := bytes.NewReader([]byte(`[{"name":"Restored"},{"id":"case-bad","status":"nonsense"}]`))
	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var result usecase.ImportResult
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
	gt.Value(t, result.Imported).Equal(1)
	gt.Value(t, result.Skipped).Equal(1)
}
