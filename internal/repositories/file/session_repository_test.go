package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*SessionRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "sessions.jsonl")
	repo, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func TestSessionRepository_CreateAssignsIDs(t *testing.T) {
	repo, _ := openTemp(t)
	ctx := context.Background()

	a := &models.Session{PlayerName: "Ann", Money: 10}
	b := &models.Session{PlayerName: "Bo", Money: -2}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSessionRepository_TopOrdersByMoney(t *testing.T) {
	repo, _ := openTemp(t)
	ctx := context.Background()

	for _, money := range []int{10, 50, 5} {
		require.NoError(t, repo.Create(ctx, &models.Session{PlayerName: "p", Money: money}))
	}

	top, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 50, top[0].Money)
	assert.Equal(t, 10, top[1].Money)
}

func TestSessionRepository_TopBreaksTiesByID(t *testing.T) {
	repo, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Session{PlayerName: "first", Money: 20}))
	require.NoError(t, repo.Create(ctx, &models.Session{PlayerName: "second", Money: 20}))

	top, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "first", top[0].PlayerName)
	assert.Equal(t, "second", top[1].PlayerName)
}

func TestSessionRepository_ReopenKeepsSessions(t *testing.T) {
	repo, path := openTemp(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Session{PlayerName: "Ann", Money: 7, TimePlayed: 40, DatePlayed: "2024-05-01 12:00:00"}))
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.Session{ID: 1, PlayerName: "Ann", Money: 7, TimePlayed: 40, DatePlayed: "2024-05-01 12:00:00"}, *all[0])

	next := &models.Session{PlayerName: "Bo"}
	require.NoError(t, reopened.Create(ctx, next))
	assert.Equal(t, int64(2), next.ID)
}

func TestSessionRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestSessionRepository_DeleteAll(t *testing.T) {
	repo, _ := openTemp(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Session{PlayerName: "Ann"}))

	require.NoError(t, repo.DeleteAll(ctx))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSessionRepository_ClosedRepository(t *testing.T) {
	repo, _ := openTemp(t)
	require.NoError(t, repo.Close())
	require.NoError(t, repo.Close())

	assert.Error(t, repo.Create(context.Background(), &models.Session{}))
}
