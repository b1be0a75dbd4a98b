package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/usecase"
	"github.com/osint-lab/casetrail/pkg/utils/errutil"
	"github.com/osint-lab/casetrail/pkg/utils/logging"
)

func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Default().Error("failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto HTTP statuses: not-found sentinels
// to 404, validation rejections to 400, quota exhaustion to 507.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrCaseNotFound),
		errors.Is(err, usecase.ErrFindingNotFound),
		errors.Is(err, usecase.ErrNoteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidToolStatus):
		status = http.StatusBadRequest
	case errors.Is(err, kv.ErrQuotaExceeded):
		status = http.StatusInsufficientStorage
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return false
	}
	return true
}
