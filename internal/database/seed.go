package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hola/internal/models"
)

// SampleGreetingID is the id of the greeting seeded for development.
const SampleGreetingID = "63902476-66f3-4351-a617-0a36b1f0cd15"

// GreetingRepo is the greeting persistence Seed writes through.
type GreetingRepo interface {
	FindByID(ctx context.Context, id string) (*models.Greeting, error)
	Save(ctx context.Context, g *models.Greeting) error
}

// SampleGreeting returns the development sample greeting.
func SampleGreeting(now time.Time) *models.Greeting {
	enabled := true
	return &models.Greeting{
		ID:                      SampleGreetingID,
		RecipientName:           "John",
		SenderName:              "Jane",
		Message:                 "Happy Birthday!",
		Occasion:                models.OccasionBirthday,
		ThemeID:                 "default",
		CreatedAt:               now.UnixMilli(),
		AnimationType:           "fade",
		ContinuousEffect:        models.EffectConfetti,
		ContinuousEffectEnabled: &enabled,
	}
}

// Seed stores the sample greeting unless it already exists. notFound is the
// repo's sentinel for a missing greeting.
func Seed(ctx context.Context, repo GreetingRepo, notFound error, now time.Time) error {
	_, err := repo.FindByID(ctx, SampleGreetingID)
	if err == nil {
		slog.Info("sample greeting already seeded, skipping")
		return nil
	}
	if !errors.Is(err, notFound) {
		return fmt.Errorf("seed check sample greeting: %w", err)
	}

	if err := repo.Save(ctx, SampleGreeting(now)); err != nil {
		return fmt.Errorf("seed sample greeting: %w", err)
	}

	slog.Info("sample greeting seeded", "id", SampleGreetingID, "path", "/greeting/"+SampleGreetingID)
	return nil
}
