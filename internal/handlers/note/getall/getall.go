package getall

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	authmw "github.com/Himanshu-Rajkumar/notes-app/internal/middleware"
	"github.com/Himanshu-Rajkumar/notes-app/internal/models"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/api/response"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/logger/sl"
)

type NotesLister interface {
	GetNotesByOwner(ownerID uuid.UUID, limit, offset int) ([]models.Note, error)
}

func New(log *slog.Logger, notesLister NotesLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.getall.New"

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

		limit := 0
		offset := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				limit = v
			}
		}
		if o := r.URL.Query().Get("offset"); o != "" {
			if v, err := strconv.Atoi(o); err == nil && v > 0 {
				offset = v
			}
		}

		notes, err := notesLister.GetNotesByOwner(identity.UserID, limit, offset)
		if err != nil {
			log.Error("failed to get notes", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get notes"))
			return
		}
		if notes == nil {
			notes = []models.Note{}
		}

		log.Info("notes delivered", slog.Int("count", len(notes)))
		render.JSON(w, r, notes)
	}
}
