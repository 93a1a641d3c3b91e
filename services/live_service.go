package services

import (
	"context"
	"errors"
	"time"

	"snakyarena/models"
	"snakyarena/storage"

	"github.com/google/uuid"
)

var ErrNotSessionOwner = errors.New("session belongs to another player")

type LiveService struct {
	live  storage.LiveStore
	users storage.UserScoreStore
}

func NewLiveService(live storage.LiveStore, users storage.UserScoreStore) *LiveService {
	return &LiveService{
		live:  live,
		users: users,
	}
}

type StartSessionRequest struct {
	Mode string `json:"mode" binding:"required,oneof=pass-through walls"`
}

type UpdateSessionRequest struct {
	CurrentScore int `json:"currentScore" binding:"gte=0"`
}

type WatchResponse struct {
	Success bool `json:"success"`
}

// GetActivePlayers returns a snapshot of every live session. Callers poll
// this; there is no push channel.
func (s *LiveService) GetActivePlayers(ctx context.Context) ([]models.ActivePlayer, error) {
	players, err := s.live.ListLiveSessions(ctx)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []models.ActivePlayer{}
	}
	return players, nil
}

// WatchPlayer reports whether the given player has a live session. An
// unknown id is a false result, not an error, and nothing is mutated.
func (s *LiveService) WatchPlayer(ctx context.Context, playerID string) (*WatchResponse, error) {
	session, err := s.live.GetSession(ctx, playerID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return &WatchResponse{Success: false}, nil
		}
		return nil, err
	}
	return &WatchResponse{Success: session.IsLive}, nil
}

func (s *LiveService) StartSession(ctx context.Context, userID string, req *StartSessionRequest) (*models.ActivePlayer, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	session := &storage.LiveSession{
		ActivePlayer: models.ActivePlayer{
			ID:           uuid.NewString(),
			Username:     user.Username,
			CurrentScore: 0,
			Mode:         req.Mode,
			IsLive:       true,
			StartedAt:    time.Now().UTC(),
		},
		OwnerID: user.ID,
	}

	if err := s.live.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return &session.ActivePlayer, nil
}

// UpdateSession is the heartbeat: it refreshes the session's liveness window
// and records the in-progress score.
func (s *LiveService) UpdateSession(ctx context.Context, userID, sessionID string, req *UpdateSessionRequest) (*models.ActivePlayer, error) {
	session, err := s.live.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != userID {
		return nil, ErrNotSessionOwner
	}

	session.CurrentScore = req.CurrentScore
	if err := s.live.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return &session.ActivePlayer, nil
}

// EndSession removes the session from the roster. Ending a session that is
// already gone is not an error.
func (s *LiveService) EndSession(ctx context.Context, userID, sessionID string) error {
	session, err := s.live.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if session.OwnerID != userID {
		return ErrNotSessionOwner
	}

	return s.live.DeleteSession(ctx, sessionID)
}
