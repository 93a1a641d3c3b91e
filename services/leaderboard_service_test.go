package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"snakyarena/models"
	"snakyarena/storage"
	"snakyarena/storage/memory"
)

type LeaderboardSuite struct {
	suite.Suite
	store   *memory.Store
	service *LeaderboardService
	ctx     context.Context
	userID  string
}

func TestLeaderboardSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardSuite))
}

func (s *LeaderboardSuite) SetupTest() {
	s.store = memory.New()
	s.service = NewLeaderboardService(s.store)
	s.ctx = context.Background()
	s.userID = s.createUser("SnakeMaster", "snake@game.com")
}

func (s *LeaderboardSuite) createUser(username, email string) string {
	user := &models.User{
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateUser(s.ctx, user))
	return user.ID
}

// seedScore inserts an entry for another account so tests control the
// submission history a rank is computed against.
func (s *LeaderboardSuite) seedScore(userID string, score int, mode string, at time.Time) {
	_, err := s.store.ApplyScore(s.ctx, userID, score, mode, at)
	s.Require().NoError(err)
}

func (s *LeaderboardSuite) TestFirstSubmissionIsHighScore() {
	resp, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: 100, Mode: models.ModeWalls})
	s.Require().NoError(err)

	s.True(resp.IsHighScore)
	s.Equal(1, resp.Rank)

	user, err := s.store.GetUserByID(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(100, user.HighScore)
	s.Equal(1, user.GamesPlayed)
}

func (s *LeaderboardSuite) TestLowerScoreDoesNotTouchHighScore() {
	_, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: 100, Mode: models.ModeWalls})
	s.Require().NoError(err)

	resp, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: 100, Mode: models.ModeWalls})
	s.Require().NoError(err)
	s.False(resp.IsHighScore, "equal score must not count as a new high score")

	resp, err = s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: 40, Mode: models.ModeWalls})
	s.Require().NoError(err)
	s.False(resp.IsHighScore)

	user, err := s.store.GetUserByID(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(100, user.HighScore)
	s.Equal(3, user.GamesPlayed)
}

func (s *LeaderboardSuite) TestGamesPlayedCountsEverySubmission() {
	for i := 0; i < 7; i++ {
		_, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: i * 10, Mode: models.ModePassThrough})
		s.Require().NoError(err)
	}

	user, err := s.store.GetUserByID(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(7, user.GamesPlayed)
}

func (s *LeaderboardSuite) TestConcurrentSubmissionsKeepCountExact() {
	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: score, Mode: models.ModeWalls})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	user, err := s.store.GetUserByID(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(workers, user.GamesPlayed)
	s.Equal(workers-1, user.HighScore)
}

func (s *LeaderboardSuite) TestSubmissionRankCountsStrictlyGreater() {
	other := s.createUser("Viper_X", "viper@game.com")
	now := time.Now().UTC()
	s.seedScore(other, 100, models.ModeWalls, now)
	s.seedScore(other, 80, models.ModeWalls, now)
	s.seedScore(other, 80, models.ModeWalls, now)

	// Only the 100 is strictly greater than 90.
	resp, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: 90, Mode: models.ModeWalls})
	s.Require().NoError(err)
	s.Equal(2, resp.Rank)
}

func (s *LeaderboardSuite) TestSubmissionRankTiesShareRank() {
	other := s.createUser("Viper_X", "viper@game.com")
	now := time.Now().UTC()
	for _, score := range []int{50, 80, 80, 30} {
		s.seedScore(other, score, models.ModeWalls, now)
	}

	// Nothing is strictly greater than 80, including the existing 80s.
	resp, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: 80, Mode: models.ModeWalls})
	s.Require().NoError(err)
	s.Equal(1, resp.Rank)
}

func (s *LeaderboardSuite) TestSubmissionRankIgnoresOtherModes() {
	other := s.createUser("Viper_X", "viper@game.com")
	s.seedScore(other, 500, models.ModePassThrough, time.Now().UTC())

	resp, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: 10, Mode: models.ModeWalls})
	s.Require().NoError(err)
	s.Equal(1, resp.Rank)
}

func (s *LeaderboardSuite) TestSubmitScoreUnknownUser() {
	_, err := s.service.SubmitScore(s.ctx, "missing", &SubmitScoreRequest{Score: 10, Mode: models.ModeWalls})
	s.ErrorIs(err, storage.ErrUserNotFound)

	// Nothing may have been persisted for the failed submission.
	entries, err := s.service.GetLeaderboard(s.ctx, "", 0)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *LeaderboardSuite) TestLeaderboardPositionalTieBreak() {
	other := s.createUser("Viper_X", "viper@game.com")
	earlier := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)
	s.seedScore(other, 80, models.ModeWalls, later)
	s.seedScore(s.userID, 80, models.ModeWalls, earlier)

	entries, err := s.service.GetLeaderboard(s.ctx, models.ModeWalls, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	// Earlier submission wins the tie, and the tied entries get distinct
	// sequential ranks.
	s.Equal("SnakeMaster", entries[0].Username)
	s.Equal(1, entries[0].Rank)
	s.Equal("Viper_X", entries[1].Username)
	s.Equal(2, entries[1].Rank)
}

func (s *LeaderboardSuite) TestLeaderboardModeFilter() {
	now := time.Now().UTC()
	s.seedScore(s.userID, 100, models.ModeWalls, now)
	s.seedScore(s.userID, 200, models.ModePassThrough, now)
	s.seedScore(s.userID, 300, models.ModePassThrough, now)

	entries, err := s.service.GetLeaderboard(s.ctx, models.ModePassThrough, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	for _, entry := range entries {
		s.Equal(models.ModePassThrough, entry.Mode)
	}
}

func (s *LeaderboardSuite) TestLeaderboardLimit() {
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.seedScore(s.userID, i*10, models.ModeWalls, now.Add(time.Duration(i)*time.Second))
	}

	entries, err := s.service.GetLeaderboard(s.ctx, models.ModeWalls, 3)
	s.Require().NoError(err)
	s.Len(entries, 3)

	// Zero falls back to the default, oversized limits are capped.
	entries, err = s.service.GetLeaderboard(s.ctx, models.ModeWalls, 0)
	s.Require().NoError(err)
	s.Len(entries, 5)
}

func (s *LeaderboardSuite) TestLeaderboardRepeatedReadsAreIdentical() {
	now := time.Now().UTC()
	for i, score := range []int{40, 90, 90, 10} {
		s.seedScore(s.userID, score, models.ModeWalls, now.Add(time.Duration(i)*time.Minute))
	}

	first, err := s.service.GetLeaderboard(s.ctx, models.ModeWalls, 10)
	s.Require().NoError(err)
	second, err := s.service.GetLeaderboard(s.ctx, models.ModeWalls, 10)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *LeaderboardSuite) TestScoreEntrySnapshotsUsername() {
	resp, err := s.service.SubmitScore(s.ctx, s.userID, &SubmitScoreRequest{Score: 70, Mode: models.ModeWalls})
	s.Require().NoError(err)
	s.Equal(1, resp.Rank)

	entries, err := s.service.GetLeaderboard(s.ctx, models.ModeWalls, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("SnakeMaster", entries[0].Username)
	s.NotEmpty(entries[0].ID)
	s.False(entries[0].Date.IsZero())
}
