package l3_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/AndrewDonelson/gdsave/internal/l3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testcontainers "github.com/testcontainers/testcontainers-go"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	pgImage    = "postgres:16-alpine"
	pgDatabase = "gdsavetest"
	pgUser     = "gdsaveuser"
	pgPassword = "gdsavepass"
	table      = "levels_archive"
)

var columns = []string{"title", "author", "record"}

// setupPG starts a Postgres container and returns a Store bound to a fresh
// archive-shaped table. The test is skipped when Docker is unavailable.
func setupPG(t *testing.T) (*l3.Store, *pgxpool.Pool) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	pgc, err := tcpg.Run(ctx, pgImage,
		tcpg.WithDatabase(pgDatabase),
		tcpg.WithUsername(pgUser),
		tcpg.WithPassword(pgPassword),
		tcpg.BasicWaitStrategies(),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pgc.Terminate(ctx); err != nil {
			t.Logf("cleanup: terminate container: %v", err)
		}
	})

	dsn, err := pgc.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := l3.Connect(ctx, dsn, table)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.Exec(ctx, `CREATE TABLE `+table+` (
		id     BIGSERIAL PRIMARY KEY,
		title  TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		record TEXT NOT NULL DEFAULT ''
	)`, nil))
	return store, store.Pool()
}

func TestL3_Ping(t *testing.T) {
	store, _ := setupPG(t)
	require.NoError(t, store.Ping(context.Background()))
}

func TestL3_CopyAndCount(t *testing.T) {
	store, _ := setupPG(t)
	ctx := context.Background()

	n, err := store.CopyFromRows(ctx, columns, l3.CopyFromSlice([][]any{
		{"Stereo Madness", "RobTop", "H4sIAAAAAAAAC"},
		{"Back On Track", "RobTop", ""},
		{"My Level", "me", "H4sIAAAAAAAAC"},
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := store.Count(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)

	byAuthor, err := store.Count(ctx, "author = $1", []any{"RobTop"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byAuthor)
}

func TestL3_QueryAndQueryRow(t *testing.T) {
	store, _ := setupPG(t)
	ctx := context.Background()
	_, err := store.CopyFromRows(ctx, columns, l3.CopyFromSlice([][]any{
		{"A", "x", "r1"}, {"B", "x", "r2"},
	}))
	require.NoError(t, err)

	rows, err := store.Query(ctx, "SELECT title FROM "+table+" WHERE author = $1 ORDER BY title", []any{"x"})
	require.NoError(t, err)
	var titles []string
	for rows.Next() {
		var title string
		require.NoError(t, rows.Scan(&title))
		titles = append(titles, title)
	}
	rows.Close()
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"A", "B"}, titles)

	var record string
	require.NoError(t, store.QueryRow(ctx, "SELECT record FROM "+table+" WHERE title = $1", []any{"B"}).Scan(&record))
	assert.Equal(t, "r2", record)

	err = store.QueryRow(ctx, "SELECT record FROM "+table+" WHERE title = $1", []any{"missing"}).Scan(&record)
	assert.True(t, l3.IsNoRows(err))
}

func TestL3_Delete(t *testing.T) {
	store, _ := setupPG(t)
	ctx := context.Background()
	_, err := store.CopyFromRows(ctx, columns, l3.CopyFromSlice([][]any{
		{"A", "x", ""}, {"B", "y", ""}, {"C", "y", ""},
	}))
	require.NoError(t, err)

	n, err := store.Delete(ctx, "author = $1", []any{"y"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := store.Count(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
}

func TestL3_BeginTx_CommitAndRollback(t *testing.T) {
	store, _ := setupPG(t)
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, "INSERT INTO "+table+" (title) VALUES ($1)", "kept")
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	tx, err = store.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, "INSERT INTO "+table+" (title) VALUES ($1)", "dropped")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	n, err := store.Count(ctx, "title IN ('kept', 'dropped')", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestL3_ConcurrentCopy(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping concurrent archive test in short mode")
	}
	store, _ := setupPG(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			rows := make([][]any, 25)
			for i := range rows {
				rows[i] = []any{fmt.Sprintf("level-%d-%d", g, i), "bulk", ""}
			}
			_, err := store.CopyFromRows(ctx, columns, l3.CopyFromSlice(rows))
			assert.NoError(t, err)
		}(g)
	}
	wg.Wait()

	n, err := store.Count(ctx, "author = 'bulk'", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(200), n)
}

func TestL3_Errors(t *testing.T) {
	store, _ := setupPG(t)
	ctx := context.Background()

	_, err := store.Query(ctx, "SELECT nope FROM "+table, nil)
	assert.Error(t, err)
	assert.Error(t, store.Exec(ctx, "NOT SQL", nil))
	_, err = store.CopyFromRows(ctx, []string{"no_such_column"}, l3.CopyFromSlice([][]any{{"x"}}))
	assert.Error(t, err)
	_, err = store.Count(ctx, "no_such_column = 1", nil)
	assert.Error(t, err)
	_, err = store.Delete(ctx, "no_such_column = 1", nil)
	assert.Error(t, err)
}
