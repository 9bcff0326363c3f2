package server

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNameTaken      = errors.New("player name already taken")
	ErrBadCredentials = errors.New("invalid name or password")
	ErrPlayerNotFound = errors.New("player not found")
)

type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// PlayerStore is the durable player registry. It is the only persistent
// state in the service; game sessions themselves are in-memory only.
type PlayerStore struct {
	db *sql.DB
}

func NewPlayerStore(db *sql.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

// Create registers a player with a bcrypt-hashed password.
func (s *PlayerStore) Create(ctx context.Context, name, password string) (Player, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Player{}, err
	}

	p := Player{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, string(hash), p.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Player{}, ErrNameTaken
		}
		return Player{}, err
	}
	return p, nil
}

// Authenticate checks name and password and returns the player.
func (s *PlayerStore) Authenticate(ctx context.Context, name, password string) (Player, error) {
	var (
		p         Player
		hash      string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_at FROM players WHERE name = ?`, name,
	).Scan(&p.ID, &p.Name, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrBadCredentials
	}
	if err != nil {
		return Player{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Player{}, ErrBadCredentials
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return p, nil
}

// Get returns the player by ID. Token verification calls this so that a
// deleted player's tokens stop working before they expire.
func (s *PlayerStore) Get(ctx context.Context, id string) (Player, error) {
	var (
		p         Player
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM players WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrPlayerNotFound
	}
	if err != nil {
		return Player{}, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return p, nil
}
