package storage

import (
	"context"
	"errors"
	"time"

	"snakyarena/models"
)

// Errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email or username already registered")
	ErrSessionNotFound = errors.New("session not found")
)

// ScoreResult is the outcome of an atomic score application.
type ScoreResult struct {
	Entry       models.Score
	IsHighScore bool
}

// LiveSession is an active player record plus the owning account id. The
// owner id is used for write authorization only and never appears in the
// roster payload.
type LiveSession struct {
	models.ActivePlayer
	OwnerID string `json:"ownerId"`
}

// UserScoreStore persists user accounts and their immutable score entries.
type UserScoreStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ApplyScore increments the user's games counter, raises the high score
	// when strictly beaten, and appends the score entry with the user's
	// current username snapshot. All of it becomes visible or none of it
	// does, and concurrent applications for the same user are serialized.
	ApplyScore(ctx context.Context, userID string, score int, mode string, at time.Time) (*ScoreResult, error)

	// CountHigherScores counts entries in the given mode with a strictly
	// greater score.
	CountHigherScores(ctx context.Context, mode string, score int) (int64, error)

	// ListScores returns entries ordered by score descending, ties broken by
	// earlier date, truncated to limit. An empty mode means all modes.
	ListScores(ctx context.Context, mode string, limit int) ([]models.Score, error)
}

// LiveStore tracks in-progress game sessions for the live roster.
type LiveStore interface {
	SaveSession(ctx context.Context, session *LiveSession) error
	GetSession(ctx context.Context, id string) (*LiveSession, error)

	// ListLiveSessions returns every session whose liveness flag is set,
	// in a stable order.
	ListLiveSessions(ctx context.Context) ([]models.ActivePlayer, error)

	DeleteSession(ctx context.Context, id string) error
}
