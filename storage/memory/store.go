package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"snakyarena/models"
	"snakyarena/storage"
)

// Store is an in-memory implementation of both storage interfaces. It backs
// the test suites and keeps the services storage-agnostic. A single mutex
// serializes writes, which gives ApplyScore the same lost-update protection
// the postgres store gets from row locking.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	byEmail  map[string]string
	scores   []models.Score
	sessions map[string]*storage.LiveSession
}

func New() *Store {
	return &Store{
		users:    make(map[string]*models.User),
		byEmail:  make(map[string]string),
		sessions: make(map[string]*storage.LiveSession),
	}
}

var (
	_ storage.UserScoreStore = (*Store)(nil)
	_ storage.LiveStore      = (*Store)(nil)
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return storage.ErrEmailTaken
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	stored := *user
	s.users[stored.ID] = &stored
	s.byEmail[stored.Email] = stored.ID
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *Store) ApplyScore(ctx context.Context, userID string, score int, mode string, at time.Time) (*storage.ScoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	result := &storage.ScoreResult{}

	user.GamesPlayed++
	if score > user.HighScore {
		user.HighScore = score
		result.IsHighScore = true
	}

	entry := models.Score{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Score:    score,
		Mode:     mode,
		Date:     at,
	}
	s.scores = append(s.scores, entry)

	result.Entry = entry
	return result, nil
}

func (s *Store) CountHigherScores(ctx context.Context, mode string, score int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, entry := range s.scores {
		if entry.Mode == mode && entry.Score > score {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListScores(ctx context.Context, mode string, limit int) ([]models.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Score, 0, len(s.scores))
	for _, entry := range s.scores {
		if mode == "" || entry.Mode == mode {
			matched = append(matched, entry)
		}
	}

	// Score descending, earlier date wins ties.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Score != matched[j].Score {
			return matched[i].Score > matched[j].Score
		}
		return matched[i].Date.Before(matched[j].Date)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *Store) SaveSession(ctx context.Context, session *storage.LiveSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	s.sessions[stored.ID] = &stored
	return nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*storage.LiveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Store) ListLiveSessions(ctx context.Context) ([]models.ActivePlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]models.ActivePlayer, 0, len(s.sessions))
	for _, session := range s.sessions {
		if session.IsLive {
			players = append(players, session.ActivePlayer)
		}
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].StartedAt.Equal(players[j].StartedAt) {
			return players[i].ID < players[j].ID
		}
		return players[i].StartedAt.Before(players[j].StartedAt)
	})

	return players, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
