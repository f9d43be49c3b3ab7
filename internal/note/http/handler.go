package http

import (
	"net/http"

	commonhttp "github.com/akarpovich/notes-service/internal/common/http"
	"github.com/akarpovich/notes-service/internal/common/logger"
	"github.com/akarpovich/notes-service/internal/note/service"
)

type createNoteRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type updateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type listNotesResponse struct {
	Status  string                 `json:"status"`
	Results int                    `json:"results"`
	Notes   []service.NoteResponse `json:"notes"`
}

type noteEnvelope struct {
	Status string   `json:"status"`
	Data   noteData `json:"data"`
}

type noteData struct {
	Note service.NoteResponse `json:"note"`
}

type Handler struct {
	notes service.Service
	log   *logger.Logger
}

func NewHandler(notes service.Service, log *logger.Logger) *Handler {
	return &Handler{notes: notes, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/healthchecker", commonhttp.HealthHandler())
	mux.HandleFunc("GET /api/notes", h.list)
	mux.HandleFunc("POST /api/notes", h.create)
	mux.HandleFunc("GET /api/notes/{id}", h.get)
	mux.HandleFunc("PATCH /api/notes/{id}", h.update)
	mux.HandleFunc("DELETE /api/notes/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListNotes(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if notes == nil {
		notes = []service.NoteResponse{}
	}

	commonhttp.WriteJSON(w, http.StatusOK, listNotesResponse{
		Status:  "success",
		Results: len(notes),
		Notes:   notes,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	note, err := h.notes.CreateNote(r.Context(), req.Title, req.Content)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, noteEnvelope{Status: "success", Data: noteData{Note: note}})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.ParseUUIDPath(r)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	note, err := h.notes.GetNote(r.Context(), id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, noteEnvelope{Status: "success", Data: noteData{Note: note}})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.ParseUUIDPath(r)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	var req updateNoteRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	note, err := h.notes.UpdateNote(r.Context(), id, req.Title, req.Content)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, noteEnvelope{Status: "success", Data: noteData{Note: note}})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.ParseUUIDPath(r)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if err := h.notes.DeleteNote(r.Context(), id); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
