package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
	"github.com/flulance/flulance-backend-go/internal/pkg/storage"
	"github.com/go-chi/chi/v5"
)

type MatchHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	AdminList(w http.ResponseWriter, r *http.Request)

	// Chat
	ListMessages(w http.ResponseWriter, r *http.Request)
	SendMessage(w http.ResponseWriter, r *http.Request)
}

type matchHandlerImpl struct {
	matchService match.MatchService
}

func NewMatchHandler(matchService match.MatchService) MatchHandler {
	return &matchHandlerImpl{matchService: matchService}
}

// ListMine handles GET /matches
func (h *matchHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.matchService.ListForUser(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /matches/{id}
func (h *matchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.matchService.GetMatch(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Complete handles PUT /matches/{id}/complete
func (h *matchHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.matchService.Complete(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Match marked as completed", result)
}

// AdminList handles GET /admin/matches
func (h *matchHandlerImpl) AdminList(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.matchService.AdminList(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMessages handles GET /matches/{id}/messages
func (h *matchHandlerImpl) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.matchService.ListMessages(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SendMessage handles POST /matches/{id}/messages. The body is either JSON
// or multipart with a "message" field and an optional "attachment" file.
func (h *matchHandlerImpl) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	var req match.SendMessageRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, storage.MessageAttachmentOptions.MaxSize+(1<<20))
		if err := r.ParseMultipartForm(storage.MessageAttachmentOptions.MaxSize); err != nil {
			slog.Warn("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}
		req.Message = r.FormValue("message")

		file, header, err := r.FormFile("attachment")
		switch {
		case err == nil:
			defer file.Close()
			req.Attachment = &match.Attachment{
				File:        file,
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
			}
		case err != http.ErrMissingFile:
			slog.Warn("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.matchService.SendMessage(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Message sent", result)
}
