package http

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/types"
	"github.com/osint-lab/casetrail/pkg/repository"
	"github.com/osint-lab/casetrail/pkg/service/export"
	"github.com/osint-lab/casetrail/pkg/usecase"
	"github.com/osint-lab/casetrail/pkg/utils/errutil"
)

func (s *Server) listCases(w http.ResponseWriter, r *http.Request) {
	cases, err := s.store.ListCases(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cases)
}

type createCaseRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Priority    types.Priority    `json:"priority"`
	Subject     map[string]string `json:"subject"`
	Assignee    string            `json:"assignee"`
	DueDate     *time.Time        `json:"dueDate"`
}

func (s *Server) createCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Priority != "" && !req.Priority.IsValid() {
		errutil.HandleHTTP(r.Context(), w, goerr.New("invalid priority", goerr.V("priority", req.Priority)), http.StatusBadRequest)
		return
	}

	c, err := s.store.CreateCase(r.Context(), repository.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Priority:    req.Priority,
		Subject:     req.Subject,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCase(r.Context(), types.CaseID(chi.URLParam(r, "caseID")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

type updateCaseRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Tags        []string          `json:"tags"`
	Status      *types.CaseStatus `json:"status"`
	Priority    *types.Priority   `json:"priority"`
	Subject     map[string]string `json:"subject"`
	Assignee    *string           `json:"assignee"`
	DueDate     *time.Time        `json:"dueDate"`
}

func (s *Server) updateCase(w http.ResponseWriter, r *http.Request) {
	var req updateCaseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status != nil && !req.Status.IsValid() {
		errutil.HandleHTTP(r.Context(), w, goerr.New("invalid status", goerr.V("status", *req.Status)), http.StatusBadRequest)
		return
	}
	if req.Priority != nil && !req.Priority.IsValid() {
		errutil.HandleHTTP(r.Context(), w, goerr.New("invalid priority", goerr.V("priority", *req.Priority)), http.StatusBadRequest)
		return
	}

	c, err := s.store.UpdateCase(r.Context(), types.CaseID(chi.URLParam(r, "caseID")), usecase.CasePatch{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Status:      req.Status,
		Priority:    req.Priority,
		Subject:     req.Subject,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCase(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCase(r.Context(), types.CaseID(chi.URLParam(r, "caseID"))); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getActiveCase(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetActiveCase(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if c == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

type setActiveRequest struct {
	// CaseID empty or null clears the pointer
	CaseID string `json:"caseId"`
}

func (s *Server) setActiveCase(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.SetActiveCase(r.Context(), types.CaseID(req.CaseID)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) exportCase(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCase(r.Context(), types.CaseID(chi.URLParam(r, "caseID")))
	if err != nil {
		respondError(w, r, err)
		return
	}

	now := time.Now()
	var product *export.Product
	switch format := chi.URLParam(r, "format"); format {
	case "json":
		product, err = export.JSON(c, now)
	case "markdown":
		product = export.Markdown(c, now)
	case "html":
		product, err = export.HTML(c, now)
	default:
		errutil.HandleHTTP(r.Context(), w, goerr.New("unknown export format", goerr.V("format", format)), http.StatusBadRequest)
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", product.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+product.Filename+`"`)
	if _, err := io.WriteString(w, product.Content); err != nil {
		errutil.Handle(r.Context(), err, "failed to write export") //nolint:errcheck // header already committed
	}
}

func (s *Server) searchHistory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.History(r.Context()))
}

func (s *Server) importCases(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	result, err := s.store.ImportCases(r.Context(), data)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
