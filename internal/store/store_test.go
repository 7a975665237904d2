// store_test.go provides a shared test database helper for the store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/pressly/goose/v3"

	"hola/internal/database"
	"hola/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "hola")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "hola")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if _, err := database.Migrate(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanCollection removes a test collection. Call in t.Cleanup().
func cleanCollection(db *sql.DB, collectionID string) {
	db.Exec("DELETE FROM documents WHERE collection_id = $1", collectionID)
}

func birthday(id string, createdAt int64) *models.Greeting {
	return &models.Greeting{
		ID:            id,
		RecipientName: "Jane",
		SenderName:    "John",
		Message:       "Happy Birthday!",
		Occasion:      models.OccasionBirthday,
		ThemeID:       "birthday-festive",
		CreatedAt:     createdAt,
	}
}

// fakeL1 is a map-backed L1 that counts lookups.
type fakeL1 struct {
	items   map[string]models.Greeting
	hits    int
	deletes []string
}

func newFakeL1() *fakeL1 { return &fakeL1{items: map[string]models.Greeting{}} }

func (c *fakeL1) Get(_ context.Context, id string) (*models.Greeting, bool) {
	g, ok := c.items[id]
	if ok {
		c.hits++
	}
	return &g, ok
}

func (c *fakeL1) Set(_ context.Context, g *models.Greeting) { c.items[g.ID] = *g }

func (c *fakeL1) Delete(_ context.Context, id string) {
	delete(c.items, id)
	c.deletes = append(c.deletes, id)
}

type recordingLog struct{ actions []string }

func (l *recordingLog) Record(_ context.Context, greetingID, action string, greetings int) {
	l.actions = append(l.actions, fmt.Sprintf("%s:%s:%d", greetingID, action, greetings))
}
