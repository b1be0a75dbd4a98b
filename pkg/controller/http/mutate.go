package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
)

type saveSearchRequest struct {
	Values map[string]string `json:"values"`
	Links  []model.ToolLink  `json:"links"`
}

func (s *Server) saveSearch(w http.ResponseWriter, r *http.Request) {
	var req saveSearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, err := s.store.SaveSearch(r.Context(), types.CaseID(chi.URLParam(r, "caseID")), req.Values, req.Links)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

type findingRequest struct {
	ToolID     string           `json:"toolId"`
	ToolName   string           `json:"toolName"`
	ToolURL    string           `json:"toolUrl"`
	Category   string           `json:"category"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	Importance types.Importance `json:"importance"`
	Tags       []string         `json:"tags"`
}

func (s *Server) addFinding(w http.ResponseWriter, r *http.Request) {
	var req findingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	f, err := s.store.AddFinding(r.Context(), types.CaseID(chi.URLParam(r, "caseID")), model.FindingInput{
		ToolID:     req.ToolID,
		ToolName:   req.ToolName,
		ToolURL:    req.ToolURL,
		Category:   req.Category,
		Title:      req.Title,
		Content:    req.Content,
		Importance: req.Importance,
		Tags:       req.Tags,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, f)
}

type findingPatchRequest struct {
	Title      *string           `json:"title"`
	Content    *string           `json:"content"`
	Importance *types.Importance `json:"importance"`
	Tags       []string          `json:"tags"`
}

func (s *Server) updateFinding(w http.ResponseWriter, r *http.Request) {
	var req findingPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	f, err := s.store.UpdateFinding(r.Context(),
		types.CaseID(chi.URLParam(r, "caseID")),
		types.FindingID(chi.URLParam(r, "findingID")),
		model.FindingPatch{
			Title:      req.Title,
			Content:    req.Content,
			Importance: req.Importance,
			Tags:       req.Tags,
		})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, f)
}

func (s *Server) deleteFinding(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteFinding(r.Context(),
		types.CaseID(chi.URLParam(r, "caseID")),
		types.FindingID(chi.URLParam(r, "findingID")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type noteRequest struct {
	Content string `json:"content"`
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	note, err := s.store.AddNote(r.Context(), types.CaseID(chi.URLParam(r, "caseID")), req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteNote(r.Context(),
		types.CaseID(chi.URLParam(r, "caseID")),
		types.NoteID(chi.URLParam(r, "noteID")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type toolStatusRequest struct {
	Status types.ToolStatus `json:"status"`
}

func (s *Server) setToolStatus(w http.ResponseWriter, r *http.Request) {
	var req toolStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := s.store.SetToolStatus(r.Context(),
		types.CaseID(chi.URLParam(r, "caseID")),
		types.ToolID(chi.URLParam(r, "toolID")),
		req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
