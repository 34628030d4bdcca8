package login

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/Himanshu-Rajkumar/notes-app/internal/models"
	"github.com/Himanshu-Rajkumar/notes-app/internal/storage"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/api/response"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/auth"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/hasher"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/logger/sl"
)

type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	response.Response
	Token string `json:"token"`
}

type UserProvider interface {
	GetUserByEmail(email string) (*models.User, error)
}

func New(log *slog.Logger, userProvider UserProvider, tokens *auth.TokenManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.login.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

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

		// Unknown email and wrong password produce the same response so the
		// endpoint does not reveal which emails are registered.
		user, err := userProvider.GetUserByEmail(req.Email)
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", slog.String("email", req.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}
		if err != nil {
			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log in"))
			return
		}

		ok, err := hasher.Verify(req.Password, user.PasswordHash)
		if err != nil {
			log.Error("failed to verify password", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log in"))
			return
		}
		if !ok {
			log.Warn("invalid password", slog.String("email", req.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}

		token, err := tokens.Generate(user.ID, user.Name)
		if err != nil {
			log.Error("failed to generate token", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to generate token"))
			return
		}

		log.Info("user logged in", slog.String("email", req.Email))
		render.JSON(w, r, Response{
			Response: response.OK(),
			Token:    token,
		})
	}
}
