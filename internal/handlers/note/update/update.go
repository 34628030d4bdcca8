package update

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	authmw "github.com/Himanshu-Rajkumar/notes-app/internal/middleware"
	"github.com/Himanshu-Rajkumar/notes-app/internal/models"
	"github.com/Himanshu-Rajkumar/notes-app/internal/storage"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/api/response"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/logger/sl"
)

// Request is a partial patch: fields left empty keep their stored values.
type Request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type NoteUpdater interface {
	UpdateNote(noteID, callerID uuid.UUID, title, description string) (*models.Note, error)
}

func New(log *slog.Logger, noteUpdater NoteUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.update.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		identity, ok := authmw.IdentityFromContext(r.Context())
		if !ok {
			log.Error("no identity in context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		noteID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid note id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid note id"))
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}
		if req.Title == "" && req.Description == "" {
			log.Error("empty patch")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("nothing to update"))
			return
		}

		note, err := noteUpdater.UpdateNote(noteID, identity.UserID, req.Title, req.Description)
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Info("note not found", slog.String("note_id", noteID.String()))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
			return
		}
		if errors.Is(err, storage.ErrForbidden) {
			log.Warn("forbidden update attempt",
				slog.String("note_id", noteID.String()),
				slog.String("caller_id", identity.UserID.String()),
			)
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden access"))
			return
		}
		if err != nil {
			log.Error("failed to update note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update note"))
			return
		}

		log.Info("note updated", slog.String("note_id", noteID.String()))
		render.JSON(w, r, note)
	}
}
