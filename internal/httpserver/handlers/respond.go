package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/apihub/internal/draft"
)

// problem is an RFC 7807 error body.
type problem struct {
	Title      string                 `json:"title"`
	Status     int                    `json:"status"`
	Detail     string                 `json:"detail,omitempty"`
	Validation *draft.ValidationError `json:"validation,omitempty"`
}

// loadingResponse is what read endpoints return while the data is absent.
type loadingResponse struct {
	Loading bool `json:"loading"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeLoading(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, loadingResponse{Loading: true})
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

func writeValidation(w http.ResponseWriter, verr *draft.ValidationError) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(problem{
		Title:      "Draft validation failed",
		Status:     http.StatusUnprocessableEntity,
		Detail:     verr.Error(),
		Validation: verr,
	})
}

// decodeJSON reads a small JSON body, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid json body: "+err.Error())
		return false
	}
	return true
}
