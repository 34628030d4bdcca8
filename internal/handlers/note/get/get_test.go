package get_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himanshu-Rajkumar/notes-app/internal/handlers/note/get"
	authmw "github.com/Himanshu-Rajkumar/notes-app/internal/middleware"
	"github.com/Himanshu-Rajkumar/notes-app/internal/models"
	"github.com/Himanshu-Rajkumar/notes-app/internal/storage"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/auth"
)

type stubGetter struct {
	note *models.Note
}

func (s *stubGetter) GetNote(noteID uuid.UUID) (*models.Note, error) {
	if s.note == nil || s.note.ID != noteID {
		return nil, storage.ErrNoteNotFound
	}
	return s.note, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(t *testing.T, getter *stubGetter) (chi.Router, *auth.TokenManager) {
	t.Helper()

	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authmw.Auth(discardLogger(), tm))
		r.Get("/myNotes/{id}", get.New(discardLogger(), getter))
	})
	return r, tm
}

func doGet(t *testing.T, router chi.Router, tm *auth.TokenManager, noteID string, callerID uuid.UUID, callerName string) *httptest.ResponseRecorder {
	t.Helper()

	tok, err := tm.Generate(callerID, callerName)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/myNotes/"+noteID, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGet_OwnerSeesNote(t *testing.T) {
	ownerID := uuid.New()
	note := &models.Note{ID: uuid.New(), OwnerID: ownerID, OwnerName: "Alice", Title: "t", Description: "d"}
	router, tm := newRouter(t, &stubGetter{note: note})

	rr := doGet(t, router, tm, note.ID.String(), ownerID, "Alice")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"t"`)
}

func TestGet_NonOwnerForbidden(t *testing.T) {
	note := &models.Note{ID: uuid.New(), OwnerID: uuid.New(), OwnerName: "Alice", Title: "t", Description: "d"}
	router, tm := newRouter(t, &stubGetter{note: note})

	rr := doGet(t, router, tm, note.ID.String(), uuid.New(), "Bob")

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGet_NotFound(t *testing.T) {
	router, tm := newRouter(t, &stubGetter{})

	rr := doGet(t, router, tm, uuid.New().String(), uuid.New(), "Bob")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGet_BadID(t *testing.T) {
	router, tm := newRouter(t, &stubGetter{})

	rr := doGet(t, router, tm, "not-a-uuid", uuid.New(), "Bob")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
