package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/draft"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/apihub/internal/logger"
	"github.com/MrSnakeDoc/apihub/internal/scheduler"
)

// DefaultImportLimit caps uploaded definition files when none is configured.
const DefaultImportLimit = 5 << 20

type endpointUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type endpointCountResponse struct {
	Count int            `json:"count"`
	Draft draft.Snapshot `json:"draft"`
}

type endpointRemoveResponse struct {
	Removed bool           `json:"removed"`
	Draft   draft.Snapshot `json:"draft"`
}

type submitResponse struct {
	Created domain.NewListing `json:"created"`
	Draft   draft.Snapshot    `json:"draft"`
}

// CreateDraft opens a new form pre-filled with the first known category.
func CreateDraft(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dr := d.Drafts.Create(d.MemoryIndex.DefaultCategoryID())
		d.Logger.Debug("draft created", logger.String("draft_id", dr.ID()))

		w.Header().Set("Location", "/api/drafts/"+dr.ID())
		writeJSON(w, http.StatusCreated, dr.Snapshot())
	}
}

// withDraft resolves {id} or answers 404.
func withDraft(d deps.Deps, next func(http.ResponseWriter, *http.Request, *draft.Draft)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dr, err := d.Drafts.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeProblem(w, http.StatusNotFound, err.Error())
			return
		}
		next(w, r, dr)
	}
}

func endpointIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "endpoint index must be an integer")
		return 0, false
	}
	return i, true
}

func GetDraft(d deps.Deps) http.HandlerFunc {
	return withDraft(d, func(w http.ResponseWriter, r *http.Request, dr *draft.Draft) {
		writeJSON(w, http.StatusOK, dr.Snapshot())
	})
}

// PatchDraft applies a partial update of the scalar fields.
func PatchDraft(d deps.Deps) http.HandlerFunc {
	return withDraft(d, func(w http.ResponseWriter, r *http.Request, dr *draft.Draft) {
		var p draft.FieldsPatch
		if !decodeJSON(w, r, &p) {
			return
		}
		dr.Patch(p)
		writeJSON(w, http.StatusOK, dr.Snapshot())
	})
}

func AddEndpoint(d deps.Deps) http.HandlerFunc {
	return withDraft(d, func(w http.ResponseWriter, r *http.Request, dr *draft.Draft) {
		n := dr.AddEndpoint()
		writeJSON(w, http.StatusCreated, endpointCountResponse{Count: n, Draft: dr.Snapshot()})
	})
}

func UpdateEndpoint(d deps.Deps) http.HandlerFunc {
	return withDraft(d, func(w http.ResponseWriter, r *http.Request, dr *draft.Draft) {
		i, ok := endpointIndex(w, r)
		if !ok {
			return
		}
		var u endpointUpdate
		if !decodeJSON(w, r, &u) {
			return
		}

		switch err := dr.UpdateEndpoint(i, u.Field, u.Value); {
		case errors.Is(err, draft.ErrEndpointIndex):
			writeProblem(w, http.StatusNotFound, err.Error())
		case err != nil:
			writeProblem(w, http.StatusBadRequest, err.Error())
		default:
			writeJSON(w, http.StatusOK, dr.Snapshot())
		}
	})
}

// RemoveEndpoint never fails: removing the last endpoint or an unknown
// index is a no-op reported as removed=false.
func RemoveEndpoint(d deps.Deps) http.HandlerFunc {
	return withDraft(d, func(w http.ResponseWriter, r *http.Request, dr *draft.Draft) {
		i, ok := endpointIndex(w, r)
		if !ok {
			return
		}
		removed := dr.RemoveEndpoint(i)
		writeJSON(w, http.StatusOK, endpointRemoveResponse{Removed: removed, Draft: dr.Snapshot()})
	})
}

// AttachFile stores an uploaded definition file, either as the "file" part
// of a multipart form or as the raw body (name from ?name=).
func AttachFile(d deps.Deps) http.HandlerFunc {
	limit := d.ImportLimit
	if limit <= 0 {
		limit = DefaultImportLimit
	}

	return withDraft(d, func(w http.ResponseWriter, r *http.Request, dr *draft.Draft) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)

		name, content, err := readUpload(r)
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeProblem(w, http.StatusRequestEntityTooLarge, "definition file is too large")
				return
			}
			writeProblem(w, http.StatusBadRequest, err.Error())
			return
		}

		dr.AttachFile(name, content)
		writeJSON(w, http.StatusOK, dr.Snapshot())
	})
}

func readUpload(r *http.Request) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		content, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, err
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "definition"
		}
		return name, content, nil
	}

	f, hdr, err := r.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return hdr.Filename, content, nil
}

// ImportDefinition pre-fills the draft from its attached OpenAPI file.
func ImportDefinition(d deps.Deps) http.HandlerFunc {
	return withDraft(d, func(w http.ResponseWriter, r *http.Request, dr *draft.Draft) {
		switch err := dr.ImportAttachment(r.Context()); {
		case errors.Is(err, draft.ErrNoAttachment):
			writeProblem(w, http.StatusConflict, err.Error())
		case err != nil:
			d.Logger.Info("definition import failed",
				logger.String("draft_id", dr.ID()),
				logger.Error(err))
			writeProblem(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeJSON(w, http.StatusOK, dr.Snapshot())
		}
	})
}

// SubmitDraft validates the draft and creates the listing in the store.
// A success resets the draft and schedules a catalog reload.
func SubmitDraft(d deps.Deps) http.HandlerFunc {
	return withDraft(d, func(w http.ResponseWriter, r *http.Request, dr *draft.Draft) {
		created, err := dr.Submit(r.Context(), d.Catalog)

		var verr *draft.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidation(w, verr)
		case errors.Is(err, draft.ErrSubmitInFlight):
			writeProblem(w, http.StatusConflict, err.Error())
		case errors.Is(err, draft.ErrSubmitFailed):
			d.Logger.Warn("listing creation failed",
				logger.String("draft_id", dr.ID()),
				logger.String("name", created.Name),
				logger.Error(err))
			writeProblem(w, http.StatusBadGateway, draft.ErrSubmitFailed.Error())
		case err != nil:
			writeProblem(w, http.StatusInternalServerError, err.Error())
		default:
			d.Logger.Info("listing submitted",
				logger.String("draft_id", dr.ID()),
				logger.String("name", created.Name))
			scheduler.Trigger(d.ReloadTrigger)
			writeJSON(w, http.StatusCreated, submitResponse{Created: created, Draft: dr.Snapshot()})
		}
	})
}
