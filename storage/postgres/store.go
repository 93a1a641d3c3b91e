package postgres

import (
	"context"
	"errors"
	"time"

	"snakyarena/models"
	"snakyarena/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm-backed implementation of the user/score storage.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ storage.UserScoreStore = (*Store)(nil)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return storage.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ApplyScore runs the whole submission write path in one transaction. The
// user row is locked with SELECT ... FOR UPDATE so concurrent submissions
// for the same account cannot lose updates to games_played or high_score.
func (s *Store) ApplyScore(ctx context.Context, userID string, score int, mode string, at time.Time) (*storage.ScoreResult, error) {
	var result storage.ScoreResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return storage.ErrUserNotFound
			}
			return err
		}

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

		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		result.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Store) CountHigherScores(ctx context.Context, mode string, score int) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Score{}).
		Where("mode = ? AND score > ?", mode, score).
		Count(&count).Error
	return count, err
}

func (s *Store) ListScores(ctx context.Context, mode string, limit int) ([]models.Score, error) {
	query := s.db.WithContext(ctx).Model(&models.Score{})
	if mode != "" {
		query = query.Where("mode = ?", mode)
	}

	var scores []models.Score
	err := query.Order("score DESC, date ASC").Limit(limit).Find(&scores).Error
	return scores, err
}
