package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Himanshu-Rajkumar/notes-app/internal/models"
	"github.com/Himanshu-Rajkumar/notes-app/internal/storage"
)

type Storage struct {
	db *sql.DB
}

func New(dsn string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS notes (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			owner_name TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: create tables: %w", op, err)
	}

	return &Storage{
		db: db,
	}, nil
}

// SaveUser persists a new user. The password must already be hashed by the
// caller; plaintext never reaches the store.
func (s *Storage) SaveUser(name, email, passwordHash, role string) (uuid.UUID, error) {
	const op = "storage.postgres.SaveUser"

	userID := uuid.New()
	_, err := s.db.Exec(
		"INSERT INTO users(id, name, email, password_hash, role) VALUES($1, $2, $3, $4, $5)",
		userID, name, email, passwordHash, role,
	)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return uuid.Nil, storage.ErrUserExists
		}
		return uuid.Nil, fmt.Errorf("%s: insert user: %w", op, err)
	}

	return userID, nil
}

func (s *Storage) GetUserByEmail(email string) (*models.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	stmt, err := s.db.Prepare("SELECT id, name, email, password_hash, role, created_at FROM users WHERE email=$1")
	if err != nil {
		return nil, fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	var u models.User
	err = stmt.QueryRow(email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}
	return &u, nil
}

func (s *Storage) SaveNote(ownerID uuid.UUID, ownerName, title, description string) (uuid.UUID, error) {
	const op = "storage.postgres.SaveNote"

	noteID := uuid.New()
	_, err := s.db.Exec(
		"INSERT INTO notes(id, owner_id, owner_name, title, description) VALUES($1, $2, $3, $4, $5)",
		noteID, ownerID, ownerName, title, description,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: insert note: %w", op, err)
	}
	return noteID, nil
}

func (s *Storage) GetNote(noteID uuid.UUID) (*models.Note, error) {
	const op = "storage.postgres.GetNote"

	stmt, err := s.db.Prepare("SELECT id, owner_id, owner_name, title, description, created_at FROM notes WHERE id=$1")
	if err != nil {
		return nil, fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	var n models.Note
	err = stmt.QueryRow(noteID).Scan(&n.ID, &n.OwnerID, &n.OwnerName, &n.Title, &n.Description, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}
	return &n, nil
}

// GetNotesByOwner returns the owner's notes in creation order. limit == 0
// means no limit.
func (s *Storage) GetNotesByOwner(ownerID uuid.UUID, limit, offset int) ([]models.Note, error) {
	const op = "storage.postgres.GetNotesByOwner"

	query := `
		SELECT id, owner_id, owner_name, title, description, created_at
		FROM notes
		WHERE owner_id = $1
		ORDER BY created_at ASC
		LIMIT NULLIF($2, 0) OFFSET $3
	`
	rows, err := s.db.Query(query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.OwnerName, &n.Title, &n.Description, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return notes, nil
}

// UpdateNote applies a partial patch. Empty patch fields keep the stored
// values. The owner is checked before anything is written.
func (s *Storage) UpdateNote(noteID, callerID uuid.UUID, title, description string) (*models.Note, error) {
	const op = "storage.postgres.UpdateNote"

	var ownerID uuid.UUID
	err := s.db.QueryRow("SELECT owner_id FROM notes WHERE id=$1", noteID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}
	if ownerID != callerID {
		return nil, storage.ErrForbidden
	}

	stmt, err := s.db.Prepare(`
		UPDATE notes
		SET title = COALESCE(NULLIF($1, ''), title),
		    description = COALESCE(NULLIF($2, ''), description)
		WHERE id = $3
		RETURNING id, owner_id, owner_name, title, description, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	var n models.Note
	err = stmt.QueryRow(title, description, noteID).Scan(&n.ID, &n.OwnerID, &n.OwnerName, &n.Title, &n.Description, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: update: %w", op, err)
	}
	return &n, nil
}

func (s *Storage) DeleteNote(noteID, callerID uuid.UUID) error {
	const op = "storage.postgres.DeleteNote"

	var ownerID uuid.UUID
	err := s.db.QueryRow("SELECT owner_id FROM notes WHERE id=$1", noteID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNoteNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: query row: %w", op, err)
	}
	if ownerID != callerID {
		return storage.ErrForbidden
	}

	_, err = s.db.Exec("DELETE FROM notes WHERE id=$1", noteID)
	if err != nil {
		return fmt.Errorf("%s: delete exec: %w", op, err)
	}
	return nil
}
