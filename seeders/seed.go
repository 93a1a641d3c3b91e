package seeders

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"snakyarena/models"
	"snakyarena/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seed loads demo users, scores and live sessions for development. It is a
// no-op when the first demo account already exists.
func Seed(store storage.UserScoreStore, live storage.LiveStore) error {
	ctx := context.Background()

	if _, err := store.GetUserByEmail(ctx, "snake@game.com"); err == nil {
		return nil // Already seeded
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demoUsers := []struct {
		username  string
		email     string
		highScore int
	}{
		{"SnakeMaster", "snake@game.com", 2450},
		{"Pythonista", "py@game.com", 1800},
		{"Viper_X", "viper@game.com", 3200},
		{"Slippery", "slip@game.com", 950},
		{"Anaconda", "ana@game.com", 5000},
	}

	modes := []string{models.ModePassThrough, models.ModeWalls}

	for _, demo := range demoUsers {
		user := &models.User{
			ID:           uuid.NewString(),
			Username:     demo.username,
			Email:        demo.email,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC().AddDate(0, 0, -rand.Intn(30)-1),
		}
		if err := store.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", demo.username, err)
		}

		// 3-5 historical games per user, topping out at the demo high score.
		games := rand.Intn(3) + 3
		for i := 0; i < games; i++ {
			score := rand.Intn(demo.highScore)
			if i == games-1 {
				score = demo.highScore
			}
			at := time.Now().UTC().Add(-time.Duration(rand.Intn(5000)+5) * time.Minute)
			if _, err := store.ApplyScore(ctx, user.ID, score, modes[rand.Intn(len(modes))], at); err != nil {
				return fmt.Errorf("seed score for %s: %w", demo.username, err)
			}
		}
	}

	liveNames := []string{"SpeedyS", "GlitchGamer", "NoodleBoi"}
	for _, name := range liveNames {
		session := &storage.LiveSession{
			ActivePlayer: models.ActivePlayer{
				ID:           uuid.NewString(),
				Username:     name,
				CurrentScore: rand.Intn(490) + 10,
				Mode:         modes[rand.Intn(len(modes))],
				IsLive:       true,
				StartedAt:    time.Now().UTC().Add(-time.Duration(rand.Intn(20)+1) * time.Minute),
			},
		}
		if err := live.SaveSession(ctx, session); err != nil {
			return fmt.Errorf("seed session for %s: %w", name, err)
		}
	}

	log.Printf("Seeded %d demo users and %d live sessions", len(demoUsers), len(liveNames))
	return nil
}
