package services

import (
	"context"
	"time"

	"snakyarena/storage"
)

const (
	DefaultLeaderboardLimit = 10
	// MaxLeaderboardLimit caps client-supplied limits so a single read
	// cannot pull the whole scores table.
	MaxLeaderboardLimit = 100
)

type LeaderboardService struct {
	store storage.UserScoreStore
}

func NewLeaderboardService(store storage.UserScoreStore) *LeaderboardService {
	return &LeaderboardService{store: store}
}

type SubmitScoreRequest struct {
	Score    int    `json:"score" binding:"gte=0"`
	Mode     string `json:"mode" binding:"required,oneof=pass-through walls"`
	Duration int    `json:"duration"` // seconds of play, reported by the client but not persisted
}

type ScoreResponse struct {
	Rank        int  `json:"rank"`
	IsHighScore bool `json:"isHighScore"`
}

type LeaderboardEntry struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Score    int       `json:"score"`
	Mode     string    `json:"mode"`
	Date     time.Time `json:"date"`
	Rank     int       `json:"rank"`
}

// SubmitScore applies the submission atomically and computes the submission
// rank: one plus the number of entries in the same mode with a strictly
// greater score. The count runs against state that already includes the
// just-inserted entry, so tied scores share a rank.
func (s *LeaderboardService) SubmitScore(ctx context.Context, userID string, req *SubmitScoreRequest) (*ScoreResponse, error) {
	result, err := s.store.ApplyScore(ctx, userID, req.Score, req.Mode, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	higher, err := s.store.CountHigherScores(ctx, req.Mode, req.Score)
	if err != nil {
		return nil, err
	}

	return &ScoreResponse{
		Rank:        int(higher) + 1,
		IsHighScore: result.IsHighScore,
	}, nil
}

// GetLeaderboard returns the top entries, optionally filtered by mode.
// Ranks here are positional: tied scores get distinct sequential ranks,
// unlike the submission-time rank above. The two rankings are intentionally
// separate computations.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, mode string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	scores, err := s.store.ListScores(ctx, mode, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(scores))
	for i, entry := range scores {
		entries = append(entries, LeaderboardEntry{
			ID:       entry.ID,
			Username: entry.Username,
			Score:    entry.Score,
			Mode:     entry.Mode,
			Date:     entry.Date,
			Rank:     i + 1,
		})
	}
	return entries, nil
}
