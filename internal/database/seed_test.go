package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"hola/internal/models"
)

var errMissing = errors.New("missing")

// mapRepo is an in-memory GreetingRepo.
type mapRepo struct {
	greetings map[string]models.Greeting
	saves     int
	loadErr   error
}

func (r *mapRepo) FindByID(_ context.Context, id string) (*models.Greeting, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	g, ok := r.greetings[id]
	if !ok {
		return nil, errMissing
	}
	return &g, nil
}

func (r *mapRepo) Save(_ context.Context, g *models.Greeting) error {
	r.saves++
	r.greetings[g.ID] = *g
	return nil
}

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &mapRepo{greetings: map[string]models.Greeting{}}

	if err := Seed(ctx, repo, errMissing, now); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, repo, errMissing, now.Add(time.Hour)); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	if repo.saves != 1 {
		t.Errorf("saves: got %d, want 1", repo.saves)
	}
	g := repo.greetings[SampleGreetingID]
	if g.RecipientName != "John" || g.SenderName != "Jane" || g.Effect() != models.EffectConfetti {
		t.Errorf("unexpected sample: %+v", g)
	}
	if g.CreatedAt != now.UnixMilli() {
		t.Errorf("createdAt: got %d", g.CreatedAt)
	}
}

func TestSeedPropagatesLoadErrors(t *testing.T) {
	repo := &mapRepo{greetings: map[string]models.Greeting{}, loadErr: errors.New("down")}
	if err := Seed(context.Background(), repo, errMissing, time.Now()); err == nil {
		t.Fatal("expected error")
	}
	if repo.saves != 0 {
		t.Errorf("saves: got %d, want 0", repo.saves)
	}
}
