package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	s := NewSQLiteStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// testStores adds redis and postgres when LUMINA_TEST_REDIS_URL or
// LUMINA_TEST_POSTGRES_URL point at a disposable server.
func testStores(t *testing.T) map[string]BlobStore {
	stores := map[string]BlobStore{
		"sqlite": newTestSQLite(t),
		"memory": NewMemoryStore(),
	}
	ctx := context.Background()
	if url := os.Getenv("LUMINA_TEST_REDIS_URL"); url != "" {
		s, err := NewRedisStore(ctx, url, "lumina-test:"+t.Name()+":")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		stores["redis"] = s
	}
	if url := os.Getenv("LUMINA_TEST_POSTGRES_URL"); url != "" {
		s, err := NewPostgresStore(ctx, url)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		stores["postgres"] = s
	}
	return stores
}

func TestBlobStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, s.Put(ctx, "k", []byte("v1")))
			require.NoError(t, s.Put(ctx, "k", []byte("v2")))
			got, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(got))

			require.NoError(t, s.PutMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
			a, _ := s.Get(ctx, "a")
			b, _ := s.Get(ctx, "b")
			assert.Equal(t, "1", string(a))
			assert.Equal(t, "2", string(b))
		})
	}
}

func TestSQLiteVersionCountsWrites(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	v, err := s.Version(ctx, KeyHabits)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Put(ctx, KeyHabits, []byte("[]")))
	}
	v, err = s.Version(ctx, KeyHabits)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	require.NoError(t, Migrate(ctx, s.DB()))
	require.NoError(t, Migrate(ctx, s.DB()))

	var notNull int
	require.NoError(t, s.DB().QueryRowContext(ctx,
		`SELECT "notnull" FROM pragma_table_info('blobs') WHERE name = 'version'`).Scan(&notNull))
	assert.Equal(t, 1, notNull)
}

func TestRepoHabitsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(newTestSQLite(t))

	habits, err := repo.LoadHabits(ctx)
	require.NoError(t, err)
	assert.Empty(t, habits)

	today := engine.MustParseDay("2024-05-10")
	h := engine.Habit{
		ID: "h1", Name: "Read", Category: engine.CategoryLearning,
		Frequency: engine.FrequencyDaily, StartDate: today.AddDays(-10),
		Color: engine.DefaultColor, UserID: "u1",
	}
	h.Toggle(today.AddDays(-1), today)
	h.Toggle(today, today)
	h.Reflect(today, "good chapter", engine.MoodGreat, time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC))

	require.NoError(t, repo.SaveHabits(ctx, []engine.Habit{h}))

	loaded, err := repo.LoadHabits(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	got := loaded[0]
	assert.Equal(t, 2, got.Streak)
	assert.Equal(t, 2, got.BestStreak)
	assert.True(t, got.IsCompleted(today))
	assert.True(t, got.IsCompleted(today.AddDays(-1)))
	e, ok := got.Journal.Entry(today)
	require.True(t, ok)
	assert.Equal(t, "good chapter", e.Note)
}

func TestSaveUserReplacesByID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(NewMemoryStore())

	a := engine.NewUser("a", "Ada", "ada@example.com")
	b := engine.NewUser("b", "Bob", "bob@example.com")
	require.NoError(t, repo.SaveUser(ctx, a))
	require.NoError(t, repo.SaveUser(ctx, b))

	a.AddXP(120)
	require.NoError(t, repo.SaveUser(ctx, a))

	users, err := repo.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	got, err := repo.LoadUser(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 120, got.XP)
	assert.Equal(t, 2, got.Level)

	missing, err := repo.LoadUser(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byEmail, err := repo.FindUserByEmail(ctx, "BOB@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "b", byEmail.ID)
}

func TestSaveStateWritesBothCollections(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	repo := NewRepo(store)

	other := engine.NewUser("other", "Other", "o@example.com")
	require.NoError(t, repo.SaveUser(ctx, other))

	u := engine.NewUser("u1", "Ada", "ada@example.com")
	u.AddXP(10)
	habits := []engine.Habit{{ID: "h1", Name: "Walk", Category: engine.CategoryHealth, UserID: "u1"}}
	require.NoError(t, repo.SaveState(ctx, habits, u))

	loadedHabits, err := repo.LoadHabits(ctx)
	require.NoError(t, err)
	assert.Len(t, loadedHabits, 1)

	users, err := repo.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	v, err := store.Version(ctx, KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(NewMemoryStore())

	s, err := repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, repo.SaveSession(ctx, Session{UserID: "u1", SignedInAt: time.Now()}))
	s, err = repo.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "u1", s.UserID)

	require.NoError(t, repo.ClearSession(ctx))
	s, err = repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, d)

	d, err = ParseDriver("PG")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, d)

	_, err = ParseDriver("mongo")
	assert.Error(t, err)
}

func TestOpenMemoryAndSQLite(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Options{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "nested", "x.db")})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStore{}, s)

	_, err = Open(ctx, Options{Driver: DriverRedis})
	assert.Error(t, err)
}
