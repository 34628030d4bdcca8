package save

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	authmw "github.com/Himanshu-Rajkumar/notes-app/internal/middleware"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/api/response"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/logger/sl"
)

type Request struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type Response struct {
	response.Response
	ID uuid.UUID `json:"id"`
}

type NoteSaver interface {
	SaveNote(ownerID uuid.UUID, ownerName, title, description string) (uuid.UUID, error)
}

func New(log *slog.Logger, noteSaver NoteSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.save.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		// The owner always comes from the verified token, never from the
		// request body.
		identity, ok := authmw.IdentityFromContext(r.Context())
		if !ok {
			log.Error("no identity in context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		noteID, err := noteSaver.SaveNote(identity.UserID, identity.UserName, req.Title, req.Description)
		if err != nil {
			log.Error("failed to create note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create note"))
			return
		}

		log.Info("note created",
			slog.String("note_id", noteID.String()),
			slog.String("owner_id", identity.UserID.String()),
		)
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: response.OK(),
			ID:       noteID,
		})
	}
}
