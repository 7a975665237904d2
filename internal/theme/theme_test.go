package theme

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"hola/internal/models"
	"hola/internal/testutil"
)

func ids(themes []models.GreetingTheme) []string {
	out := make([]string, len(themes))
	for i, t := range themes {
		out[i] = t.ID
	}
	return out
}

func TestCatalogCoversEveryOccasion(t *testing.T) {
	if got := len(Catalog()); got != 54 {
		t.Errorf("catalog size: got %d, want 54", got)
	}

	reg := NewRegistry(nil)
	seen := map[string]bool{}
	for _, o := range models.Occasions {
		themes := reg.ForOccasion(o)
		if len(themes) < 8 {
			t.Errorf("occasion %s: got %d themes, want at least 8", o, len(themes))
		}
		for _, th := range themes {
			if seen[th.ID] {
				t.Errorf("duplicate theme id %q", th.ID)
			}
			seen[th.ID] = true
		}
	}
}

func TestForOccasionAppendsCustomThemes(t *testing.T) {
	custom := []models.GreetingTheme{
		{ID: "custom-gradient-a", OccasionTypes: []models.Occasion{models.OccasionBirthday}, Custom: true},
		{ID: "custom-gradient-b", OccasionTypes: []models.Occasion{models.OccasionGeneral}, Custom: true},
		{ID: "custom-theme-c", OccasionTypes: []models.Occasion{models.OccasionBirthday}, Custom: true},
	}
	reg := NewRegistry(custom)

	got := ids(reg.ForOccasion(models.OccasionBirthday))
	want := []string{
		"birthday-festive", "birthday-confetti", "birthday-elegant", "birthday-fun",
		"birthday-pastel", "birthday-whitegold", "birthday-royal", "birthday-tropical",
		"custom-gradient-a", "custom-theme-c",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ForOccasion(birthday) mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	reg := NewRegistry([]models.GreetingTheme{{ID: "custom-text-1", Name: "Custom Theme"}})

	tests := []struct {
		id     string
		wantOK bool
		name   string
	}{
		{"festival-diwali", true, "Diwali Celebration"},
		{"custom-text-1", true, "Custom Theme"},
		{"default", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := reg.Resolve(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok: got %v, want %v", tt.id, ok, tt.wantOK)
			}
			if got.Name != tt.name {
				t.Errorf("Resolve(%q) name: got %q, want %q", tt.id, got.Name, tt.name)
			}
		})
	}
}

func TestForGreetingPrefersEmbeddedTheme(t *testing.T) {
	reg := NewRegistry(nil)
	embedded := &models.GreetingTheme{ID: "custom-gradient-x", BackgroundGradient: "linear-gradient(to right, #000, #fff)"}

	got, ok := reg.ForGreeting(&models.Greeting{ThemeID: "general-calm", CustomTheme: embedded})
	if !ok || got.ID != "custom-gradient-x" {
		t.Errorf("embedded theme: got (%q, %v)", got.ID, ok)
	}

	got, ok = reg.ForGreeting(&models.Greeting{ThemeID: "general-calm"})
	if !ok || got.ID != "general-calm" {
		t.Errorf("catalog theme: got (%q, %v)", got.ID, ok)
	}

	if _, ok := reg.ForGreeting(&models.Greeting{ThemeID: "default"}); ok {
		t.Error("unknown theme id should not resolve")
	}
}

func TestDefault(t *testing.T) {
	reg := NewRegistry(nil)
	if got := reg.Default(models.OccasionThankYou).ID; got != "thankyou-grateful" {
		t.Errorf("Default(thankyou): got %q", got)
	}
	if got := reg.Default(models.Occasion("unknown")).ID; got != "birthday-festive" {
		t.Errorf("Default(unknown): got %q", got)
	}
}

func TestFactoryGradientIDsAreDistinct(t *testing.T) {
	f := NewFactory(testutil.NewStubIDGenerator())

	first, err := f.FromGradient(models.OccasionBirthday, DefaultGradientStart, DefaultGradientEnd, false)
	if err != nil {
		t.Fatalf("FromGradient: %v", err)
	}
	snapshot := first

	second, err := f.FromGradient(models.OccasionBirthday, "#000000", "#ffffff", true)
	if err != nil {
		t.Fatalf("FromGradient: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both %q", first.ID)
	}
	if diff := cmp.Diff(snapshot, first); diff != "" {
		t.Errorf("first theme changed after second creation (-want +got):\n%s", diff)
	}
	if first.BackgroundGradient != "linear-gradient(to right, #8B5CF6, #EC4899)" {
		t.Errorf("gradient: got %q", first.BackgroundGradient)
	}
	if !second.AnimatedGradient || !second.Custom || second.Name != "Custom Gradient" {
		t.Errorf("unexpected second theme: %+v", second)
	}
}

func TestFactoryRejectsInvalidColors(t *testing.T) {
	f := NewFactory(testutil.NewStubIDGenerator())
	for _, color := range []string{"", "red", "#12", "#gggggg", "8B5CF6"} {
		if _, err := f.FromGradient(models.OccasionGeneral, color, "#fff", false); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("FromGradient(%q): got %v, want ErrInvalidColor", color, err)
		}
	}
	if _, err := f.WithTextColor(Catalog()[0], models.OccasionBirthday, "blue"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("WithTextColor: got %v, want ErrInvalidColor", err)
	}
}

func TestFactoryWithTextColor(t *testing.T) {
	f := NewFactory(testutil.NewStubIDGenerator())
	base := Catalog()[0]

	a, err := f.WithTextColor(base, models.OccasionBirthday, "#112233")
	if err != nil {
		t.Fatalf("WithTextColor: %v", err)
	}
	b, err := f.WithTextColor(a, models.OccasionBirthday, "#445566")
	if err != nil {
		t.Fatalf("WithTextColor: %v", err)
	}

	if a.ID == b.ID {
		t.Errorf("text color edits reused id %q", a.ID)
	}
	if a.CustomTextColor != "#112233" || a.TextColorClass != "" || a.AccentColorClass != "" {
		t.Errorf("unexpected theme: %+v", a)
	}
	if a.BackgroundClass != base.BackgroundClass {
		t.Errorf("background should be copied from base: got %q", a.BackgroundClass)
	}
}

func TestFactoryFromImage(t *testing.T) {
	f := NewFactory(testutil.NewStubIDGenerator())
	th, err := f.FromImage(models.OccasionFestival, "https://cdn.example/bg.png")
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if th.Background() != models.BackgroundImage || th.TextColorClass != "text-white" {
		t.Errorf("unexpected theme: %+v", th)
	}
	if _, err := f.FromImage(models.OccasionFestival, "  "); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestMemoryStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Save(ctx, "device", models.GreetingTheme{ID: "a", Name: "one"})
	s.Save(ctx, "device", models.GreetingTheme{ID: "b"})
	s.Save(ctx, "device", models.GreetingTheme{ID: "a", Name: "two"})

	got, _ := s.Load(ctx, "device")
	if diff := cmp.Diff([]string{"b", "a"}, ids(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if got[1].Name != "two" {
		t.Errorf("replaced theme name: got %q", got[1].Name)
	}

	other, _ := s.Load(ctx, "other-device")
	if len(other) != 0 {
		t.Errorf("other device: got %d themes", len(other))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestValkeyStoreRoundTrip(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() {
		client.Del(ctx, customKeyPrefix+"test-device")
		client.Close()
	})

	s := NewValkeyStore(client, 0)
	want := models.GreetingTheme{
		ID:                 "custom-gradient-1",
		Name:               "Custom Gradient",
		OccasionTypes:      []models.Occasion{models.OccasionBirthday},
		Custom:             true,
		BackgroundGradient: "linear-gradient(to right, #000, #fff)",
	}
	if err := s.Save(ctx, "test-device", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx, "test-device")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]models.GreetingTheme{want}, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
