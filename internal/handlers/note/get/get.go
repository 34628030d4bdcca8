package get

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

type NoteGetter interface {
	GetNote(noteID uuid.UUID) (*models.Note, error)
}

func New(log *slog.Logger, noteGetter NoteGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.get.New"

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

		note, err := noteGetter.GetNote(noteID)
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Info("note not found", slog.String("note_id", noteID.String()))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
			return
		}
		if err != nil {
			log.Error("failed to get note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get note"))
			return
		}

		if note.OwnerID != identity.UserID {
			log.Warn("forbidden access to note",
				slog.String("note_id", noteID.String()),
				slog.String("caller_id", identity.UserID.String()),
			)
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden access"))
			return
		}

		log.Info("note delivered", slog.String("note_id", noteID.String()))
		render.JSON(w, r, note)
	}
}
